package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amitakm/wonderlust/internal/auth"
	"github.com/amitakm/wonderlust/internal/config"
	"github.com/amitakm/wonderlust/internal/database"
	"github.com/amitakm/wonderlust/internal/database/listings"
	"github.com/amitakm/wonderlust/internal/database/reviews"
	"github.com/amitakm/wonderlust/internal/database/users"
	http_controllers "github.com/amitakm/wonderlust/internal/http"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts it down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Wonderlust API v%s", version)

	// Secrets come from configuration only; refuse to start without them.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	authService := auth.NewService(db.DB, cfg.Auth, cfg.Admin.Email)

	var verifier auth.IdentityVerifier
	if cfg.Google.ClientID != "" {
		verifier = auth.NewGoogleVerifier(cfg.Google.ClientID)
	} else {
		log.Printf("WARNING: GOOGLE_CLIENT_ID is not set. Google login will be disabled.")
	}

	routerCfg := http_controllers.RouterConfig{
		AuthService:      authService,
		TokenManager:     tokens,
		IdentityVerifier: verifier,
		ListingsStore:    listings.NewRepository(db.DB),
		ReviewsStore:     reviews.NewRepository(db.DB),
		LikesStore:       users.NewRepository(db.DB),
		Health:           db,
		Version:          version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}
