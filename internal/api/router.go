package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wirefeed/wirefeed/internal/auth"
	"github.com/wirefeed/wirefeed/internal/db"
	"github.com/wirefeed/wirefeed/internal/service"
	"github.com/wirefeed/wirefeed/pkg/config"
	"github.com/wirefeed/wirefeed/pkg/logging"
)

// Router sets up API routes
type Router struct {
	users     *service.UserService
	relations *service.RelationService
	feed      *service.FeedService
	likes     *service.LikeService
	tokens    *auth.TokenManager
	views     *Views
	pageSize  int
	logger    *zap.Logger
}

// NewRouter creates a new API router over the given database, wiring the
// repositories into the services
func NewRouter(database *db.DB, tokens *auth.TokenManager, cfg *config.APIConfig) *Router {
	repo := db.NewRepository(database.DB)
	users := db.NewUserRepository(repo)
	follows := db.NewFollowRepository(repo)
	posts := db.NewPostRepository(repo)
	likes := db.NewLikeRepository(repo)

	return &Router{
		users:     service.NewUserService(users, follows, cfg.PageSize),
		relations: service.NewRelationService(users, follows),
		feed:      service.NewFeedService(users, follows, posts, likes, cfg.PageSize, cfg.MaxPostLength),
		likes:     service.NewLikeService(posts, likes, follows),
		tokens:    tokens,
		views:     NewViews(cfg.DisplayLocation()),
		pageSize:  cfg.PageSize,
		logger:    logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(resolveActor(r.tokens))

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Session endpoints
	engine.POST("/register", requireOperation("auth.register"), r.register)
	engine.POST("/login", requireOperation("auth.login"), r.login)
	engine.POST("/logout", requireOperation("auth.logout"), r.logout)

	v1 := engine.Group("/v1")

	user := v1.Group("/user")
	user.GET("", requireOperation("user.list"), r.listUsers)
	user.GET("/check-follow/:id", requireOperation("user.check_follow"), r.checkFollow)
	user.GET("/:id", requireOperation("user.get"), r.getUser)
	user.GET("/:id/posts", requireOperation("user.posts"), r.userPosts)
	user.GET("/:id/follow-user", requireOperation("user.follow_user"), r.followUser)
	user.GET("/:id/follower-user", requireOperation("user.follower_user"), r.followerUser)
	user.GET("/:id/following-posts", requireOperation("user.following_posts"), r.followingPosts)
	user.PUT("/:id/follow", requireOperation("user.follow"), r.follow)
	user.DELETE("/:id/follow", requireOperation("user.unfollow"), r.unfollow)

	post := v1.Group("/post")
	post.GET("", requireOperation("post.list"), r.listPosts)
	post.POST("", requireOperation("post.create"), r.createPost)
	post.PUT("/:id", requireOperation("post.update"), r.updatePost)
	post.GET("/:id/like-user", requireOperation("post.like_user"), r.likeUsers)
	post.PUT("/:id/like", requireOperation("post.like"), r.like)
	post.DELETE("/:id/like", requireOperation("post.unlike"), r.unlike)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "wirefeed-api",
	})
}
