package auth

import (
	"strings"
	"testing"
	"time"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "hunter22" {
		t.Error("Hash should not equal the plaintext password")
	}

	if !CheckPassword(hash, "hunter22") {
		t.Error("CheckPassword should accept the correct password")
	}

	if CheckPassword(hash, "hunter23") {
		t.Error("CheckPassword should reject a wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, nil)

	token, err := m.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", claims.UserID)
	}
	if claims.TokenID == "" {
		t.Error("Expected a non-empty token ID")
	}
	if time.Until(claims.ExpiresAt) <= 0 {
		t.Error("Expected expiry in the future")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	m := NewTokenManager("secret-a", time.Hour, nil)
	other := NewTokenManager("secret-b", time.Hour, nil)

	token, err := m.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got: %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, nil)

	token, err := m.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.Verify(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for expired token, got: %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, nil)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "definitely-not-a-jwt"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(tt.token); err != ErrInvalidToken {
				t.Errorf("Expected ErrInvalidToken, got: %v", err)
			}
		})
	}
}

func TestRevocationKey(t *testing.T) {
	key := revocationKey("jti-a")

	if !strings.HasPrefix(key, "auth:revoked:") {
		t.Errorf("Expected auth:revoked: prefix, got %q", key)
	}
	// Token IDs are hashed into a fixed-length digest
	if len(key) != len("auth:revoked:")+32 {
		t.Errorf("Expected a 32-char digest suffix, got %q", key)
	}
	if revocationKey("jti-a") != key {
		t.Error("Keys must be stable for the same token ID")
	}
	if revocationKey("jti-b") == key {
		t.Error("Distinct token IDs must map to distinct keys")
	}
}

func TestRevokeWithoutCache(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, nil)

	token, err := m.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	// With no cache configured, revocation degrades to a no-op
	if err := m.Revoke(claims); err != nil {
		t.Errorf("Revoke without cache should not error, got: %v", err)
	}
	if _, err := m.Verify(token); err != nil {
		t.Errorf("Token should still verify without a revocation store: %v", err)
	}
}
