package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wirefeed/wirefeed/internal/models"
	"github.com/wirefeed/wirefeed/pkg/logging"
	"github.com/wirefeed/wirefeed/pkg/telemetry"
)

// FeedService composes post feeds and manages post lifecycle
type FeedService struct {
	users      UserStore
	follows    FollowStore
	posts      PostStore
	likes      LikeStore
	pageSize   int
	maxTextLen int
	logger     *zap.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(users UserStore, follows FollowStore, posts PostStore, likes LikeStore, pageSize, maxTextLen int) *FeedService {
	return &FeedService{
		users:      users,
		follows:    follows,
		posts:      posts,
		likes:      likes,
		pageSize:   pageSize,
		maxTextLen: maxTextLen,
		logger:     logging.WithComponent("feed-service"),
	}
}

func (s *FeedService) validateText(text string) error {
	if text == "" {
		return Invalid("This field may not be blank.")
	}
	if utf8.RuneCountInString(text) > s.maxTextLen {
		return Invalid(fmt.Sprintf("Ensure this field has no more than %d characters.", s.maxTextLen))
	}
	return nil
}

// CreatePost creates a post owned by the actor. created_at is set now,
// updated_at stays null until the first edit.
func (s *FeedService) CreatePost(ctx context.Context, actorID int64, text string) (*PostInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "FeedService.CreatePost")
	defer span.End()

	if err := s.validateText(text); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:        text,
		CreatedByID: actorID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Debug("Created post",
		zap.Int64("post_id", post.ID),
		zap.Int64("created_by", actorID))

	return s.buildPostInfo(ctx, actorID, *post)
}

// UpdatePost replaces the text of the actor's own post and stamps
// updated_at. The creation timestamp is immutable.
func (s *FeedService) UpdatePost(ctx context.Context, actorID, postID int64, text string) (*PostInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "FeedService.UpdatePost")
	defer span.End()

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, NotFound(detailNotFound)
	}
	if post.CreatedByID != actorID {
		return nil, PermissionDenied("Permission denied.")
	}
	if err := s.validateText(text); err != nil {
		return nil, err
	}

	post.Text = text
	post.EditedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	return s.buildPostInfo(ctx, actorID, *post)
}

// GetPost returns a single post view relative to the viewer
func (s *FeedService) GetPost(ctx context.Context, viewerID, postID int64) (*PostInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "FeedService.GetPost")
	defer span.End()

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, NotFound(detailNotFound)
	}
	return s.buildPostInfo(ctx, viewerID, *post)
}

// ListPosts returns one page of all posts, newest first
func (s *FeedService) ListPosts(ctx context.Context, viewerID int64, page int) (*PostPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "FeedService.ListPosts")
	defer span.End()

	total, err := s.posts.CountPosts(ctx)
	if err != nil {
		return nil, err
	}
	offset, err := pageOffset(page, s.pageSize, total)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListPosts(ctx, offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildPostPage(ctx, viewerID, posts, total)
}

// ListUserPosts returns one page of the given user's posts, newest first
func (s *FeedService) ListUserPosts(ctx context.Context, viewerID, userID int64, page int) (*PostPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "FeedService.ListUserPosts")
	defer span.End()

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound(detailNotFound)
	}

	authorIDs := []int64{userID}
	total, err := s.posts.CountPostsByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	offset, err := pageOffset(page, s.pageSize, total)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListPostsByAuthors(ctx, authorIDs, offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildPostPage(ctx, viewerID, posts, total)
}

// ListFollowingFeed returns one page of posts authored by the given
// user's followees, newest first. An empty followee set yields an empty
// page, not an error.
func (s *FeedService) ListFollowingFeed(ctx context.Context, viewerID, userID int64, page int) (*PostPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "FeedService.ListFollowingFeed")
	defer span.End()

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound(detailNotFound)
	}

	followeeIDs, err := s.follows.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.posts.CountPostsByAuthors(ctx, followeeIDs)
	if err != nil {
		return nil, err
	}
	offset, err := pageOffset(page, s.pageSize, total)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListPostsByAuthors(ctx, followeeIDs, offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildPostPage(ctx, viewerID, posts, total)
}

func (s *FeedService) buildPostInfo(ctx context.Context, viewerID int64, post models.Post) (*PostInfo, error) {
	author, err := s.users.GetUserByID(ctx, post.CreatedByID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("post %d references missing author %d", post.ID, post.CreatedByID)
	}

	authorInfo, err := buildUserInfo(ctx, s.follows, *author)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.likes.CountLikes(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	if viewerID != 0 {
		isLiked, err = s.likes.HasLike(ctx, viewerID, post.ID)
		if err != nil {
			return nil, err
		}
	}

	return &PostInfo{
		Post:      post,
		Author:    authorInfo,
		LikeCount: likeCount,
		IsLiked:   isLiked,
	}, nil
}

func (s *FeedService) buildPostPage(ctx context.Context, viewerID int64, posts []models.Post, total int64) (*PostPage, error) {
	infos := make([]PostInfo, 0, len(posts))
	for _, p := range posts {
		info, err := s.buildPostInfo(ctx, viewerID, p)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return &PostPage{Posts: infos, Total: total}, nil
}
