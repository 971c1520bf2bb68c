package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wirefeed/wirefeed/internal/models"
	"github.com/wirefeed/wirefeed/pkg/logging"
	"github.com/wirefeed/wirefeed/pkg/telemetry"
)

// RelationService manages the follow graph
type RelationService struct {
	users   UserStore
	follows FollowStore
	logger  *zap.Logger
}

// NewRelationService creates a new relation service
func NewRelationService(users UserStore, follows FollowStore) *RelationService {
	return &RelationService{
		users:   users,
		follows: follows,
		logger:  logging.WithComponent("relation-service"),
	}
}

// Follow creates a follow edge from the actor to the target user and
// returns the target's view. Duplicate edges fail with Conflict; the
// composite key in the store backs the pre-check under concurrency.
func (s *RelationService) Follow(ctx context.Context, actorID, targetID int64) (*UserInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "RelationService.Follow")
	defer span.End()

	if actorID == targetID {
		return nil, Invalid("Users cannot follow themselves.")
	}

	target, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, NotFound(detailNotFound)
	}

	exists, err := s.follows.HasFollow(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Conflict("The id user is already followed.")
	}

	err = s.follows.CreateFollow(ctx, &models.Follow{
		SourceID:      actorID,
		DestinationID: targetID,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent duplicate request
			return nil, Conflict("The id user is already followed.")
		}
		return nil, err
	}

	s.logger.Debug("Created follow edge",
		zap.Int64("source", actorID),
		zap.Int64("destination", targetID))

	info, err := buildUserInfo(ctx, s.follows, *target)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Unfollow removes the actor's follow edge to the target user and
// returns the target's view. A missing target or edge fails NotFound.
func (s *RelationService) Unfollow(ctx context.Context, actorID, targetID int64) (*UserInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "RelationService.Unfollow")
	defer span.End()

	target, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, NotFound(detailNotFound)
	}

	deleted, err := s.follows.DeleteFollow(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, NotFound("The id user is not followed.")
	}

	s.logger.Debug("Deleted follow edge",
		zap.Int64("source", actorID),
		zap.Int64("destination", targetID))

	info, err := buildUserInfo(ctx, s.follows, *target)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ListFollowing returns the users the given user follows, in no
// guaranteed order
func (s *RelationService) ListFollowing(ctx context.Context, userID int64) ([]UserInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "RelationService.ListFollowing")
	defer span.End()

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound(detailNotFound)
	}

	users, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildUserInfos(ctx, s.follows, users)
}

// ListFollowers returns the users following the given user, in no
// guaranteed order
func (s *RelationService) ListFollowers(ctx context.Context, userID int64) ([]UserInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "RelationService.ListFollowers")
	defer span.End()

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound(detailNotFound)
	}

	users, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildUserInfos(ctx, s.follows, users)
}

// IsFollowing reports whether the actor follows the target. Absence of
// the edge, including an unknown target, is false rather than an error.
func (s *RelationService) IsFollowing(ctx context.Context, actorID, targetID int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "RelationService.IsFollowing")
	defer span.End()

	return s.follows.HasFollow(ctx, actorID, targetID)
}
