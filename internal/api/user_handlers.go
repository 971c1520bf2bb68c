package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wirefeed/wirefeed/internal/service"
)

// pathID parses the :id path parameter. Non-numeric ids resolve to
// nothing, so they are NotFound rather than a parse failure.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.NotFound("Not Found.")
	}
	return id, nil
}

// listUsers handles GET /v1/user
func (r *Router) listUsers(c *gin.Context) {
	page, err := requestPage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := r.users.ListUsers(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(c, page, r.pageSize, result.Total, r.views.Users(c, result.Users)))
}

// getUser handles GET /v1/user/:id
func (r *Router) getUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	info, err := r.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r.views.User(c, *info))
}

// userPosts handles GET /v1/user/:id/posts
func (r *Router) userPosts(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := requestPage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := r.feed.ListUserPosts(c.Request.Context(), actorID(c), id, page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(c, page, r.pageSize, result.Total, r.views.Posts(c, result.Posts)))
}

// followUser handles GET /v1/user/:id/follow-user
func (r *Router) followUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	infos, err := r.relations.ListFollowing(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r.views.Users(c, infos))
}

// followerUser handles GET /v1/user/:id/follower-user
func (r *Router) followerUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	infos, err := r.relations.ListFollowers(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r.views.Users(c, infos))
}

// followingPosts handles GET /v1/user/:id/following-posts
func (r *Router) followingPosts(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := requestPage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := r.feed.ListFollowingFeed(c.Request.Context(), actorID(c), id, page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(c, page, r.pageSize, result.Total, r.views.Posts(c, result.Posts)))
}

// follow handles PUT /v1/user/:id/follow
func (r *Router) follow(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	info, err := r.relations.Follow(c.Request.Context(), actorID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r.views.User(c, *info))
}

// unfollow handles DELETE /v1/user/:id/follow. Responds 201 like the
// PUT; existing clients depend on it.
func (r *Router) unfollow(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	info, err := r.relations.Unfollow(c.Request.Context(), actorID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r.views.User(c, *info))
}

// checkFollow handles GET /v1/user/check-follow/:id
func (r *Router) checkFollow(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	following, err := r.relations.IsFollowing(c.Request.Context(), actorID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"check_follow": following})
}
