package http

import (
	"github.com/gin-gonic/gin"

	"github.com/amitakm/wonderlust/internal/auth"
)

// RouterConfig carries all dependencies the router needs. A struct keeps
// the constructor signature stable as wiring grows.
type RouterConfig struct {
	AuthService      *auth.Service
	TokenManager     *auth.TokenManager
	IdentityVerifier auth.IdentityVerifier

	ListingsStore ListingsStore
	ReviewsStore  ReviewsStore
	LikesStore    LikesStore

	Health  Pinger
	Version string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	authMW := auth.NewMiddleware(cfg.TokenManager, cfg.AuthService)
	requireAuth := authMW.RequireAuth()

	health := NewHealthController(cfg.Health, cfg.Version)
	router.GET("/health", health.Status)

	// User routes
	usersController := NewUsersController(cfg.AuthService, cfg.TokenManager, cfg.IdentityVerifier)
	users := router.Group("/api/users")
	users.POST("/signup", usersController.Signup)
	users.POST("/login", usersController.Login)
	users.POST("/google", usersController.GoogleLogin)
	users.GET("/logout", usersController.Logout)
	users.GET("/status", authMW.OptionalAuth(), usersController.Status)

	// Listing routes. Mutations run behind the ownership gate, which in
	// turn runs behind the bearer gate.
	listingsController := NewListingsController(cfg.ListingsStore, cfg.LikesStore)
	listings := router.Group("/api/listings")
	listings.GET("", listingsController.Index)
	listings.GET("/:id", listingsController.Show)
	listings.POST("", requireAuth, listingsController.Create)
	listings.GET("/:id/like", requireAuth, listingsController.Like)
	listings.PUT("/:id", requireAuth, auth.RequireListingOwner(cfg.ListingsStore), listingsController.Update)
	listings.DELETE("/:id", requireAuth, auth.RequireListingOwner(cfg.ListingsStore), listingsController.Delete)

	// Review routes
	reviewsController := NewReviewsController(cfg.ReviewsStore, cfg.ListingsStore)
	reviews := router.Group("/api/reviews")
	reviews.POST("/:id/review", requireAuth, reviewsController.Create)
	reviews.DELETE("/:id/reviews/:reviewId", requireAuth, auth.RequireReviewAuthor(cfg.ReviewsStore), reviewsController.Delete)

	// Liked-listing routes
	likedController := NewLikedListingsController(cfg.LikesStore, cfg.ListingsStore)
	liked := router.Group("/api/liked")
	liked.GET("/liked-listings", requireAuth, likedController.List)
	liked.POST("/:id/toggle-like", requireAuth, likedController.Toggle)

	return router
}
