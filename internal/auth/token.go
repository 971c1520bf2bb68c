package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wirefeed/wirefeed/internal/cache"
)

// ErrInvalidToken is returned for malformed, expired or revoked tokens
var ErrInvalidToken = errors.New("invalid token")

// Claims is what a session token carries.
type Claims struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager issues and verifies HS256 session tokens. Revocations are
// tracked in Redis until the token would have expired anyway; with no
// cache configured, logout degrades to client-side token disposal.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	cache  *cache.Cache
}

// NewTokenManager creates a new token manager
func NewTokenManager(secret string, ttl time.Duration, c *cache.Cache) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		cache:  c,
	}
}

// Issue mints a signed token for the user
func (m *TokenManager) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, rejecting revoked ones
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidToken
	}

	jti, _ := mapClaims["jti"].(string)
	exp, _ := mapClaims["exp"].(float64)

	claims := &Claims{
		UserID:    userID,
		TokenID:   jti,
		ExpiresAt: time.Unix(int64(exp), 0),
	}

	if m.isRevoked(claims.TokenID) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke invalidates a token until its natural expiry
func (m *TokenManager) Revoke(claims *Claims) error {
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	err := m.cache.Set(revocationKey(claims.TokenID), "1", ttl)
	if errors.Is(err, cache.ErrCacheDisabled) {
		return nil
	}
	return err
}

func (m *TokenManager) isRevoked(tokenID string) bool {
	if tokenID == "" {
		return false
	}
	exists, err := m.cache.Exists(revocationKey(tokenID))
	if err != nil {
		// Cache unavailable; accept the token rather than lock everyone out
		return false
	}
	return exists
}

// revocationKey derives a fixed-length cache key from the token ID
func revocationKey(tokenID string) string {
	return "auth:revoked:" + cache.HashKey("auth", "revoked", tokenID)
}
