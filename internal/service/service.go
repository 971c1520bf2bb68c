// Package service holds the follow-graph, feed and like logic. Operations
// take an explicit actor ID; there is no ambient request identity below
// the API layer.
package service

import (
	"context"

	"github.com/wirefeed/wirefeed/internal/models"
)

// UserStore is the persistence surface the services need for users.
// Lookups return (nil, nil) when the row does not exist.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context, offset, limit int) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// FollowStore is the persistence surface for follow edges. CreateFollow
// must reject duplicate (source, destination) pairs with
// gorm.ErrDuplicatedKey.
type FollowStore interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, sourceID, destinationID int64) (bool, error)
	HasFollow(ctx context.Context, sourceID, destinationID int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64) ([]models.User, error)
	ListFollowers(ctx context.Context, userID int64) ([]models.User, error)
	FolloweeIDs(ctx context.Context, userID int64) ([]int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
}

// PostStore is the persistence surface for posts.
type PostStore interface {
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	UpdatePost(ctx context.Context, post *models.Post) error
	ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	ListPostsByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]models.Post, error)
	CountPostsByAuthors(ctx context.Context, authorIDs []int64) (int64, error)
}

// LikeStore is the persistence surface for like edges. CreateLike must
// reject duplicate (user, post) pairs with gorm.ErrDuplicatedKey.
type LikeStore interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, postID int64) (bool, error)
	HasLike(ctx context.Context, userID, postID int64) (bool, error)
	CountLikes(ctx context.Context, postID int64) (int64, error)
	ListLikers(ctx context.Context, postID int64) ([]models.User, error)
}

// UserInfo is a user together with its derived follow counts, computed
// from the edge sets at read time.
type UserInfo struct {
	User          models.User
	FollowCount   int64
	FollowerCount int64
}

// PostInfo is a post together with its author view, like count and the
// requesting actor's like status.
type PostInfo struct {
	Post      models.Post
	Author    UserInfo
	LikeCount int64
	IsLiked   bool
}

// UserPage is one page of users plus the total match count.
type UserPage struct {
	Users []UserInfo
	Total int64
}

// PostPage is one page of posts plus the total match count.
type PostPage struct {
	Posts []PostInfo
	Total int64
}

// detailNotFound is the detail string for missing ids.
const detailNotFound = "Not Found."

// detailInvalidPage matches the paginator's detail string for out-of-range pages.
const detailInvalidPage = "Invalid page."

// buildUserInfo attaches derived counts to a user
func buildUserInfo(ctx context.Context, follows FollowStore, user models.User) (UserInfo, error) {
	followCount, err := follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return UserInfo{}, err
	}
	followerCount, err := follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return UserInfo{}, err
	}
	return UserInfo{
		User:          user,
		FollowCount:   followCount,
		FollowerCount: followerCount,
	}, nil
}

// buildUserInfos attaches derived counts to each user in order
func buildUserInfos(ctx context.Context, follows FollowStore, users []models.User) ([]UserInfo, error) {
	infos := make([]UserInfo, 0, len(users))
	for _, u := range users {
		info, err := buildUserInfo(ctx, follows, u)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// pageOffset validates a 1-based page number against the total count and
// returns the row offset. Page 1 of an empty set is valid; anything past
// the last page is not.
func pageOffset(page, pageSize int, total int64) (int, error) {
	if page < 1 {
		return 0, NotFound(detailInvalidPage)
	}
	offset := (page - 1) * pageSize
	if int64(offset) >= total && page != 1 {
		return 0, NotFound(detailInvalidPage)
	}
	return offset, nil
}
