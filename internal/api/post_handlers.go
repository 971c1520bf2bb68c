package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Text string `json:"text"`
}

// listPosts handles GET /v1/post
func (r *Router) listPosts(c *gin.Context) {
	page, err := requestPage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := r.feed.ListPosts(c.Request.Context(), actorID(c), page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pageEnvelope(c, page, r.pageSize, result.Total, r.views.Posts(c, result.Posts)))
}

// createPost handles POST /v1/post
func (r *Router) createPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}

	info, err := r.feed.CreatePost(c.Request.Context(), actorID(c), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r.views.Post(c, *info))
}

// updatePost handles PUT /v1/post/:id
func (r *Router) updatePost(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}

	info, err := r.feed.UpdatePost(c.Request.Context(), actorID(c), id, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r.views.Post(c, *info))
}

// likeUsers handles GET /v1/post/:id/like-user
func (r *Router) likeUsers(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	infos, err := r.likes.ListLikers(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r.views.Users(c, infos))
}

// like handles PUT /v1/post/:id/like
func (r *Router) like(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	count, err := r.likes.Like(c.Request.Context(), actorID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"count": count})
}

// unlike handles DELETE /v1/post/:id/like. Responds 201 like the PUT;
// existing clients depend on it.
func (r *Router) unlike(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	count, err := r.likes.Unlike(c.Request.Context(), actorID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"count": count})
}
