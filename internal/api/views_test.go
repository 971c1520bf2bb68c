package api

import (
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wirefeed/wirefeed/internal/models"
	"github.com/wirefeed/wirefeed/internal/service"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Request.Host = "api.example.com"
	return c, w
}

func TestUserView(t *testing.T) {
	c, _ := testContext("http://api.example.com/v1/user/7")
	views := NewViews(time.UTC)

	info := service.UserInfo{
		User:          models.User{ID: 7, Username: "alice"},
		FollowCount:   3,
		FollowerCount: 5,
	}
	view := views.User(c, info)

	if view.ID != 7 || view.Username != "alice" {
		t.Errorf("unexpected identity fields: %+v", view)
	}
	if view.FollowCount != 3 || view.FollowerCount != 5 {
		t.Errorf("unexpected counts: %+v", view)
	}
	if view.FollowUserURL != "http://api.example.com/v1/user/7/follow-user" {
		t.Errorf("unexpected follow_user_url: %s", view.FollowUserURL)
	}
	if view.FollowerUserURL != "http://api.example.com/v1/user/7/follower-user" {
		t.Errorf("unexpected follower_user_url: %s", view.FollowerUserURL)
	}
}

func TestPostViewTimestamps(t *testing.T) {
	created := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		loc         *time.Location
		updated     sql.NullTime
		wantCreated string
		wantUpdated *string
	}{
		{
			name:        "utc never edited",
			loc:         time.UTC,
			wantCreated: "2026-03-01 23:30",
			wantUpdated: nil,
		},
		{
			name:        "edited post carries updated_at",
			loc:         time.UTC,
			updated:     sql.NullTime{Time: created.Add(time.Hour), Valid: true},
			wantCreated: "2026-03-01 23:30",
			wantUpdated: strPtr("2026-03-02 00:30"),
		},
		{
			name:        "display timezone shifts the day",
			loc:         time.FixedZone("UTC+2", 2*60*60),
			wantCreated: "2026-03-02 01:30",
			wantUpdated: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext("http://api.example.com/v1/post")
			views := NewViews(tt.loc)

			info := service.PostInfo{
				Post: models.Post{
					ID:        1,
					Text:      "hello",
					CreatedAt: created,
					EditedAt:  tt.updated,
				},
				Author: service.UserInfo{User: models.User{ID: 7, Username: "alice"}},
			}
			view := views.Post(c, info)

			if view.CreatedAt != tt.wantCreated {
				t.Errorf("created_at = %q, want %q", view.CreatedAt, tt.wantCreated)
			}
			if tt.wantUpdated == nil {
				if view.UpdatedAt != nil {
					t.Errorf("updated_at = %q, want null", *view.UpdatedAt)
				}
			} else if view.UpdatedAt == nil || *view.UpdatedAt != *tt.wantUpdated {
				t.Errorf("updated_at = %v, want %q", view.UpdatedAt, *tt.wantUpdated)
			}
		})
	}
}

func TestAbsoluteURLScheme(t *testing.T) {
	c, _ := testContext("http://api.example.com/v1/user")

	if got := absoluteURL(c, "/v1/user/1"); got != "http://api.example.com/v1/user/1" {
		t.Errorf("absoluteURL = %q", got)
	}

	c.Request.Header.Set("X-Forwarded-Proto", "https")
	if got := absoluteURL(c, "/v1/user/1"); got != "https://api.example.com/v1/user/1" {
		t.Errorf("absoluteURL behind proxy = %q", got)
	}
}

func strPtr(s string) *string {
	return &s
}
