package config

import "time"

const (
	// DefaultDatabasePath is the default path for the application database.
	DefaultDatabasePath = "./wonderlust.db"

	// DefaultTokenTTL is the bearer-token validity window. Tokens are
	// stateless, so an issued token stays valid for its full TTL.
	DefaultTokenTTL = 7 * 24 * time.Hour

	// DefaultAdminEmail is the address whose federated login gets the
	// admin flag when ADMIN_EMAIL is not configured.
	DefaultAdminEmail = "admin@wonderlust.com"

	// DefaultBcryptCost trades hashing latency for brute-force resistance.
	DefaultBcryptCost = 12
)
