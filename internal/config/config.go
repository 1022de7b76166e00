package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Google
		Admin
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		// JWTSecret signs bearer tokens. Required: the server refuses to
		// start without it so a missing secret can never fall back to a
		// hardcoded value.
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int
	}
	Google struct {
		// ClientID is the OAuth client the ID-token audience must match.
		// Google login is disabled when empty.
		ClientID string
	}
	Admin struct {
		// Email grants the admin flag to a matching federated login.
		Email string
	}
)

var ErrJWTSecretMissing = errors.New("JWT_SECRET is required")

// Validate checks that required secrets are present. Called once at startup.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrJWTSecretMissing
	}
	return nil
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", DefaultTokenTTL.String())
	v.SetDefault("bcrypt_cost", DefaultBcryptCost)

	// Federated login defaults
	v.SetDefault("google_client_id", "")
	v.SetDefault("admin_email", DefaultAdminEmail)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:  v.GetString("JWT_SECRET"),
			TokenTTL:   v.GetDuration("TOKEN_TTL"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Google: Google{
			ClientID: v.GetString("GOOGLE_CLIENT_ID"),
		},
		Admin: Admin{
			Email: v.GetString("ADMIN_EMAIL"),
		},
	}
}
