package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wirefeed/wirefeed/internal/service"
)

// timestampLayout is the presentation format for post timestamps.
const timestampLayout = "2006-01-02 15:04"

// userView is the serialized form of a user
type userView struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	FollowCount     int64  `json:"follow_count"`
	FollowerCount   int64  `json:"follower_count"`
	FollowUserURL   string `json:"follow_user_url"`
	FollowerUserURL string `json:"follower_user_url"`
}

// postView is the serialized form of a post
type postView struct {
	ID          int64    `json:"id"`
	Text        string   `json:"text"`
	CreatedBy   userView `json:"created_by"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   *string  `json:"updated_at"`
	LikeCount   int64    `json:"like_count"`
	LikeUserURL string   `json:"like_user_url"`
	IsLiked     bool     `json:"is_liked"`
}

// Views renders service results into wire shapes. Stored UTC instants are
// presented in the configured display timezone.
type Views struct {
	loc *time.Location
}

// NewViews creates a view renderer for the given display timezone
func NewViews(loc *time.Location) *Views {
	return &Views{loc: loc}
}

// User renders a user with derived counts and hyperlinks
func (v *Views) User(c *gin.Context, info service.UserInfo) userView {
	return userView{
		ID:              info.User.ID,
		Username:        info.User.Username,
		FollowCount:     info.FollowCount,
		FollowerCount:   info.FollowerCount,
		FollowUserURL:   absoluteURL(c, fmt.Sprintf("/v1/user/%d/follow-user", info.User.ID)),
		FollowerUserURL: absoluteURL(c, fmt.Sprintf("/v1/user/%d/follower-user", info.User.ID)),
	}
}

// Users renders a slice of users
func (v *Views) Users(c *gin.Context, infos []service.UserInfo) []userView {
	views := make([]userView, 0, len(infos))
	for _, info := range infos {
		views = append(views, v.User(c, info))
	}
	return views
}

// Post renders a post with its nested author view
func (v *Views) Post(c *gin.Context, info service.PostInfo) postView {
	var updatedAt *string
	if info.Post.EditedAt.Valid {
		s := v.formatTime(info.Post.EditedAt.Time)
		updatedAt = &s
	}

	return postView{
		ID:          info.Post.ID,
		Text:        info.Post.Text,
		CreatedBy:   v.User(c, info.Author),
		CreatedAt:   v.formatTime(info.Post.CreatedAt),
		UpdatedAt:   updatedAt,
		LikeCount:   info.LikeCount,
		LikeUserURL: absoluteURL(c, fmt.Sprintf("/v1/post/%d/like-user", info.Post.ID)),
		IsLiked:     info.IsLiked,
	}
}

// Posts renders a slice of posts
func (v *Views) Posts(c *gin.Context, infos []service.PostInfo) []postView {
	views := make([]postView, 0, len(infos))
	for _, info := range infos {
		views = append(views, v.Post(c, info))
	}
	return views
}

func (v *Views) formatTime(t time.Time) string {
	return t.In(v.loc).Format(timestampLayout)
}

// absoluteURL builds an absolute URL for a path using the incoming
// request's scheme and host
func absoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, path)
}
