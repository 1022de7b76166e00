package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amitakm/wonderlust/internal/auth"
	"github.com/amitakm/wonderlust/internal/entities"
)

// UsersController handles signup, login, federated login and status.
type UsersController struct {
	service  *auth.Service
	tokens   *auth.TokenManager
	verifier auth.IdentityVerifier
}

// NewUsersController creates a new UsersController. verifier may be nil,
// which disables the Google login route.
func NewUsersController(service *auth.Service, tokens *auth.TokenManager, verifier auth.IdentityVerifier) *UsersController {
	return &UsersController{
		service:  service,
		tokens:   tokens,
		verifier: verifier,
	}
}

// userResponse is the user shape returned by the auth endpoints.
type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

func toUserResponse(u *entities.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

// authResponse is the success envelope for signup/login/google.
type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

func (uc *UsersController) respondWithToken(c *gin.Context, status int, message string, user *entities.User) {
	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		respondInternalError(c, err, "issue token")
		return
	}

	c.JSON(status, authResponse{
		Success: true,
		Message: message,
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Signup registers a new user with local credentials.
// POST /api/users/signup
func (uc *UsersController) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := uc.service.Signup(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			respondBadRequest(c, "A user with that username or email already exists")
		case errors.Is(err, auth.ErrUsernameRequired),
			errors.Is(err, auth.ErrEmailRequired),
			errors.Is(err, auth.ErrPasswordRequired),
			errors.Is(err, auth.ErrUsernameInvalid),
			errors.Is(err, auth.ErrEmailInvalid),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "signup")
		}
		return
	}

	uc.respondWithToken(c, http.StatusCreated, "Registered successfully!", user)
}

// Login authenticates local credentials. The username field also accepts
// an email address.
// POST /api/users/login
func (uc *UsersController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		respondBadRequest(c, "Username and password are required")
		return
	}

	user, err := uc.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	uc.respondWithToken(c, http.StatusOK, fmt.Sprintf("Welcome back, %s!", user.Username), user)
}

// GoogleLogin verifies a Google ID token and finds or creates the matching
// user.
// POST /api/users/google
func (uc *UsersController) GoogleLogin(c *gin.Context) {
	if uc.verifier == nil {
		respondError(c, http.StatusServiceUnavailable, "Google login is not configured")
		return
	}

	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
		respondBadRequest(c, "idToken is required")
		return
	}

	identity, err := uc.verifier.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidAssertion) {
			respondError(c, http.StatusUnauthorized, "Invalid Google token")
			return
		}
		respondInternalError(c, err, "google verify")
		return
	}

	user, err := uc.service.FindOrCreateFederated(identity)
	if err != nil {
		respondInternalError(c, err, "google find-or-create")
		return
	}

	uc.respondWithToken(c, http.StatusOK, fmt.Sprintf("Welcome, %s!", user.Username), user)
}

// Logout acknowledges the logout. Tokens are stateless, so the client
// discards its copy; the token itself stays valid until expiry.
// GET /api/users/logout
func (uc *UsersController) Logout(c *gin.Context) {
	respondMessage(c, "Logged out successfully")
}

// Status reports whether the caller's bearer token authenticates a user.
// Runs behind OptionalAuth, so it answers 200 either way.
// GET /api/users/status
func (uc *UsersController) Status(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isAuthenticated": true,
		"user":            toUserResponse(user),
	})
}
