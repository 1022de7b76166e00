// Package auth provides authentication and authorization for the API.
//
// Authentication is stateless: a signed bearer token (JWT) carries the user
// ID and expiry, so no server-side session store is needed and any instance
// sharing the signing secret can verify a token. The trade-off is that
// logout cannot revoke a token; it stays valid until its TTL passes.
//
// # Components
//
//   - TokenManager: issues and verifies bearer tokens
//   - HashPassword/CheckPassword: bcrypt credential handling
//   - GoogleVerifier: validates federated ID tokens and extracts claims
//   - Service: signup, login and federated find-or-create
//   - Middleware: per-request bearer gate attaching the user to the context
//   - RequireListingOwner/RequireReviewAuthor: ownership gates for mutations
//
// # Usage
//
// Initialize in entrypoint:
//
//	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
//	service := auth.NewService(db, cfg.Auth, cfg.Admin.Email)
//	mw := auth.NewMiddleware(tokens, service)
//	router.Use(mw.RequireAuth()) // or per route group
//
// Extract the user in handlers:
//
//	user := auth.CurrentUser(c)
package auth
