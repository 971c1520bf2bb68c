package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go.uber.org/zap"
)

type registerRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// register handles POST /register
func (r *Router) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}
	if req.Password != req.Confirmation {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Passwords must match."})
		return
	}

	info, err := r.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := r.tokens.Issue(info.User.ID)
	if err != nil {
		r.logger.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  r.views.User(c, *info),
	})
}

// login handles POST /login
func (r *Router) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}

	user, err := r.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	info, err := r.users.GetUser(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := r.tokens.Issue(user.ID)
	if err != nil {
		r.logger.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  r.views.User(c, *info),
	})
}

// logout handles POST /logout. The session token is revoked so it can
// no longer authenticate requests.
func (r *Router) logout(c *gin.Context) {
	claims := actorClaims(c)
	if claims == nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}

	if err := r.tokens.Revoke(claims); err != nil {
		r.logger.Error("failed to revoke token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Logged out."})
}
