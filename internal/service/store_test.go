package service

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/wirefeed/wirefeed/internal/models"
)

// memStore is an in-memory implementation of the store interfaces for
// unit tests. Duplicate edges and usernames fail with
// gorm.ErrDuplicatedKey, mirroring the translated constraint violations
// of the real store.
type memStore struct {
	mu         sync.Mutex
	users      map[int64]models.User
	follows    map[[2]int64]models.Follow
	posts      map[int64]models.Post
	likes      map[[2]int64]models.Like
	nextUserID int64
	nextPostID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[int64]models.User),
		follows: make(map[[2]int64]models.Follow),
		posts:   make(map[int64]models.Post),
		likes:   make(map[[2]int64]models.Like),
	}
}

func (m *memStore) addUser(username string) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUserID++
	user := models.User{ID: m.nextUserID, Username: username}
	m.users[user.ID] = user
	return user
}

func (m *memStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextUserID++
	user.ID = m.nextUserID
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return slicePage(all, offset, limit), nil
}

func (m *memStore) CountUsers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *memStore) CreateFollow(ctx context.Context, follow *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{follow.SourceID, follow.DestinationID}
	if _, ok := m.follows[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.follows[key] = *follow
	return nil
}

func (m *memStore) DeleteFollow(ctx context.Context, sourceID, destinationID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{sourceID, destinationID}
	if _, ok := m.follows[key]; !ok {
		return false, nil
	}
	delete(m.follows, key)
	return true, nil
}

func (m *memStore) HasFollow(ctx context.Context, sourceID, destinationID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.follows[[2]int64{sourceID, destinationID}]
	return ok, nil
}

func (m *memStore) ListFollowing(ctx context.Context, userID int64) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []models.User
	for key := range m.follows {
		if key[0] == userID {
			users = append(users, m.users[key[1]])
		}
	}
	return users, nil
}

func (m *memStore) ListFollowers(ctx context.Context, userID int64) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []models.User
	for key := range m.follows {
		if key[1] == userID {
			users = append(users, m.users[key[0]])
		}
	}
	return users, nil
}

func (m *memStore) FolloweeIDs(ctx context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for key := range m.follows {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

func (m *memStore) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	ids, _ := m.FolloweeIDs(ctx, userID)
	return int64(len(ids)), nil
}

func (m *memStore) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	users, _ := m.ListFollowers(ctx, userID)
	return int64(len(users)), nil
}

func (m *memStore) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.posts[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memStore) CreatePost(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPostID++
	post.ID = m.nextPostID
	m.posts[post.ID] = *post
	return nil
}

func (m *memStore) UpdatePost(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[post.ID] = *post
	return nil
}

func (m *memStore) postsByAuthors(authorIDs []int64) []models.Post {
	allow := make(map[int64]bool, len(authorIDs))
	for _, id := range authorIDs {
		allow[id] = true
	}
	var posts []models.Post
	for _, p := range m.posts {
		if allow[p.CreatedByID] {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return posts
}

func (m *memStore) ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return slicePage(all, offset, limit), nil
}

func (m *memStore) CountPosts(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.posts)), nil
}

func (m *memStore) ListPostsByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slicePage(m.postsByAuthors(authorIDs), offset, limit), nil
}

func (m *memStore) CountPostsByAuthors(ctx context.Context, authorIDs []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.postsByAuthors(authorIDs))), nil
}

func (m *memStore) CreateLike(ctx context.Context, like *models.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{like.UserID, like.PostID}
	if _, ok := m.likes[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.likes[key] = *like
	return nil
}

func (m *memStore) DeleteLike(ctx context.Context, userID, postID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, postID}
	if _, ok := m.likes[key]; !ok {
		return false, nil
	}
	delete(m.likes, key)
	return true, nil
}

func (m *memStore) HasLike(ctx context.Context, userID, postID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[[2]int64{userID, postID}]
	return ok, nil
}

func (m *memStore) CountLikes(ctx context.Context, postID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for key := range m.likes {
		if key[1] == postID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) ListLikers(ctx context.Context, postID int64) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []models.User
	for key := range m.likes {
		if key[1] == postID {
			users = append(users, m.users[key[0]])
		}
	}
	return users, nil
}

func slicePage[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
