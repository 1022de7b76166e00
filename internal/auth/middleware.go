package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amitakm/wonderlust/internal/entities"
)

// Context keys for data attached by the middlewares.
const (
	ContextKeyUser    = "auth_user"
	ContextKeyListing = "auth_listing"
	ContextKeyReview  = "auth_review"
)

// Middleware gates protected routes on a valid bearer token.
type Middleware struct {
	tokens  *TokenManager
	service *Service
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(tokens *TokenManager, service *Service) *Middleware {
	return &Middleware{
		tokens:  tokens,
		service: service,
	}
}

// RequireAuth returns a handler that rejects requests without a valid
// bearer token. On success the user, with credential fields stripped, is
// attached to the context and the chain continues.
//
// Status mapping: missing token or unknown user -> 401, invalid or expired
// token -> 403. The handler is never invoked on failure.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "No token provided")
			return
		}

		userID, err := m.tokens.Verify(token)
		if err != nil {
			abortAuth(c, http.StatusForbidden, "Token is invalid or expired")
			return
		}

		user, err := m.service.GetUserByID(userID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				abortAuth(c, http.StatusUnauthorized, "User not found")
				return
			}
			log.Printf("Auth middleware: failed to load user %d: %v", userID, err)
			abortAuth(c, http.StatusInternalServerError, "Something went wrong!")
			return
		}

		c.Set(ContextKeyUser, user.Sanitized())
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid bearer token is present and
// continues silently otherwise. Used by the status route, which answers for
// authenticated and anonymous callers alike.
func (m *Middleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		userID, err := m.tokens.Verify(token)
		if err != nil {
			c.Next()
			return
		}

		if user, err := m.service.GetUserByID(userID); err == nil {
			c.Set(ContextKeyUser, user.Sanitized())
		}
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// abortAuth short-circuits the request with the standard failure envelope.
func abortAuth(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// CurrentUser retrieves the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// CurrentUserID retrieves the authenticated user's ID, or 0.
func CurrentUserID(c *gin.Context) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}
