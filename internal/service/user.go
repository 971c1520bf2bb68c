package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wirefeed/wirefeed/internal/auth"
	"github.com/wirefeed/wirefeed/internal/models"
	"github.com/wirefeed/wirefeed/pkg/logging"
	"github.com/wirefeed/wirefeed/pkg/telemetry"
)

// UserService manages user listing, lookup and registration
type UserService struct {
	users    UserStore
	follows  FollowStore
	pageSize int
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users UserStore, follows FollowStore, pageSize int) *UserService {
	return &UserService{
		users:    users,
		follows:  follows,
		pageSize: pageSize,
		logger:   logging.WithComponent("user-service"),
	}
}

// GetUser returns a single user view
func (s *UserService) GetUser(ctx context.Context, userID int64) (*UserInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "UserService.GetUser")
	defer span.End()

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound(detailNotFound)
	}

	info, err := buildUserInfo(ctx, s.follows, *user)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ListUsers returns one page of users ordered by ID
func (s *UserService) ListUsers(ctx context.Context, page int) (*UserPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "UserService.ListUsers")
	defer span.End()

	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	offset, err := pageOffset(page, s.pageSize, total)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx, offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	infos, err := buildUserInfos(ctx, s.follows, users)
	if err != nil {
		return nil, err
	}
	return &UserPage{Users: infos, Total: total}, nil
}

// Register creates a new account with a bcrypt-hashed credential. A taken
// username fails Conflict via the store's unique constraint.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*UserInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "UserService.Register")
	defer span.End()

	if username == "" {
		return nil, Invalid("Username is required.")
	}
	if password == "" {
		return nil, Invalid("Password is required.")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Username already taken.")
		}
		return nil, err
	}

	s.logger.Info("Registered user",
		zap.Int64("user_id", user.ID),
		zap.String("username", username))

	return &UserInfo{User: *user}, nil
}

// Authenticate resolves a username/password pair to a user. Unknown
// usernames and wrong passwords fail identically.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "UserService.Authenticate")
	defer span.End()

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, Invalid("Invalid username and/or password.")
	}
	return user, nil
}
