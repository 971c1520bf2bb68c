package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wirefeed/wirefeed/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user. A taken username surfaces as
// gorm.ErrDuplicatedKey via the unique index.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// ListUsers retrieves a page of users ordered by ID
func (r *UserRepository) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns the total number of users
func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// CreateFollow inserts a follow edge. A duplicate edge surfaces as
// gorm.ErrDuplicatedKey via the composite primary key.
func (r *FollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

// DeleteFollow removes a follow edge, reporting whether it existed
func (r *FollowRepository) DeleteFollow(ctx context.Context, sourceID, destinationID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("source_id = ? AND destination_id = ?", sourceID, destinationID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// HasFollow reports whether the source user follows the destination user
func (r *FollowRepository) HasFollow(ctx context.Context, sourceID, destinationID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("source_id = ? AND destination_id = ?", sourceID, destinationID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFollowing retrieves the users on the destination end of the
// user's outgoing edges
func (r *FollowRepository) ListFollowing(ctx context.Context, userID int64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Select("users.*").
		Joins("INNER JOIN follows ON follows.destination_id = users.id").
		Where("follows.source_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListFollowers retrieves the users on the source end of the user's
// incoming edges
func (r *FollowRepository) ListFollowers(ctx context.Context, userID int64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Select("users.*").
		Joins("INNER JOIN follows ON follows.source_id = users.id").
		Where("follows.destination_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FolloweeIDs returns the IDs of the users the given user follows
func (r *FollowRepository) FolloweeIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("source_id = ?", userID).
		Pluck("destination_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CountFollowing returns the number of users the given user follows
func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("source_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountFollowers returns the number of users following the given user
func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("destination_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetPostByID retrieves a post by ID
func (r *PostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a new post
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// UpdatePost updates a post
func (r *PostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// ListPosts retrieves a page of posts ordered by ID descending
func (r *PostRepository) ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPosts returns the total number of posts
func (r *PostRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListPostsByAuthors retrieves a page of posts by any of the given
// authors, ordered by ID descending
func (r *PostRepository) ListPostsByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("created_by_id IN ?", authorIDs).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPostsByAuthors returns the number of posts by any of the given authors
func (r *PostRepository) CountPostsByAuthors(ctx context.Context, authorIDs []int64) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("created_by_id IN ?", authorIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LikeRepository provides like-edge database operations
type LikeRepository struct {
	*Repository
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(repo *Repository) *LikeRepository {
	return &LikeRepository{Repository: repo}
}

// CreateLike inserts a like edge. A duplicate edge surfaces as
// gorm.ErrDuplicatedKey via the composite primary key.
func (r *LikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike removes a like edge, reporting whether it existed
func (r *LikeRepository) DeleteLike(ctx context.Context, userID, postID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// HasLike reports whether the user has liked the post
func (r *LikeRepository) HasLike(ctx context.Context, userID, postID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountLikes returns the number of likes on the post
func (r *LikeRepository) CountLikes(ctx context.Context, postID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListLikers retrieves the users that liked the post
func (r *LikeRepository) ListLikers(ctx context.Context, postID int64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Select("users.*").
		Joins("INNER JOIN likes ON likes.user_id = users.id").
		Where("likes.post_id = ?", postID).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
