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

// LikeService manages post like edges
type LikeService struct {
	posts   PostStore
	likes   LikeStore
	follows FollowStore
	logger  *zap.Logger
}

// NewLikeService creates a new like service
func NewLikeService(posts PostStore, likes LikeStore, follows FollowStore) *LikeService {
	return &LikeService{
		posts:   posts,
		likes:   likes,
		follows: follows,
		logger:  logging.WithComponent("like-service"),
	}
}

// Like adds the actor to the post's liker set and returns the new like
// count. Liking twice fails Conflict, backed by the store's composite key
// under concurrent duplicates.
func (s *LikeService) Like(ctx context.Context, actorID, postID int64) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "LikeService.Like")
	defer span.End()

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, NotFound(detailNotFound)
	}

	liked, err := s.likes.HasLike(ctx, actorID, postID)
	if err != nil {
		return 0, err
	}
	if liked {
		return 0, Conflict("The id post is already Liked.")
	}

	err = s.likes.CreateLike(ctx, &models.Like{
		UserID:    actorID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, Conflict("The id post is already Liked.")
		}
		return 0, err
	}

	s.logger.Debug("Created like edge",
		zap.Int64("user", actorID),
		zap.Int64("post", postID))

	return s.likes.CountLikes(ctx, postID)
}

// Unlike removes the actor from the post's liker set and returns the
// current like count. Removing an absent like is a no-op that still
// reports the count.
func (s *LikeService) Unlike(ctx context.Context, actorID, postID int64) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "LikeService.Unlike")
	defer span.End()

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, NotFound(detailNotFound)
	}

	if _, err := s.likes.DeleteLike(ctx, actorID, postID); err != nil {
		return 0, err
	}

	return s.likes.CountLikes(ctx, postID)
}

// ListLikers returns the users that liked the post, in no guaranteed order
func (s *LikeService) ListLikers(ctx context.Context, postID int64) ([]UserInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "LikeService.ListLikers")
	defer span.End()

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, NotFound(detailNotFound)
	}

	users, err := s.likes.ListLikers(ctx, postID)
	if err != nil {
		return nil, err
	}
	return buildUserInfos(ctx, s.follows, users)
}

// IsLikedBy reports whether the actor has liked the post
func (s *LikeService) IsLikedBy(ctx context.Context, actorID, postID int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "LikeService.IsLikedBy")
	defer span.End()

	return s.likes.HasLike(ctx, actorID, postID)
}
