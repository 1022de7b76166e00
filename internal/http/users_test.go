package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitakm/wonderlust/internal/auth"
	"github.com/amitakm/wonderlust/internal/entities"
)

func TestSignup(t *testing.T) {
	s := setupServer(t, nil)

	rr := s.request(t, http.MethodPost, "/api/users/signup", "", map[string]any{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Registered successfully!", body["message"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "newuser", user["username"])
	assert.Equal(t, false, user["isAdmin"])

	// The token from signup authenticates immediately.
	token := body["token"].(string)
	rr = s.request(t, http.MethodGet, "/api/users/status", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode(t, rr)["isAuthenticated"])
}

func TestSignup_Validation(t *testing.T) {
	s := setupServer(t, nil)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing username", map[string]any{"email": "a@example.com", "password": "secret123"}},
		{"missing email", map[string]any{"username": "someone", "password": "secret123"}},
		{"missing password", map[string]any{"username": "someone", "email": "a@example.com"}},
		{"short password", map[string]any{"username": "someone", "email": "a@example.com", "password": "short"}},
		{"bad email", map[string]any{"username": "someone", "email": "nope", "password": "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.request(t, http.MethodPost, "/api/users/signup", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, false, decode(t, rr)["success"])
		})
	}
}

func TestSignup_Duplicate(t *testing.T) {
	s := setupServer(t, nil)
	s.signupUser(t, "taken")

	rr := s.request(t, http.MethodPost, "/api/users/signup", "", map[string]any{
		"username": "taken",
		"email":    "fresh@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "A user with that username or email already exists", decode(t, rr)["message"])
}

func TestLogin(t *testing.T) {
	s := setupServer(t, nil)
	s.signupUser(t, "alex")

	rr := s.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"username": "alex",
		"password": "password12345",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode(t, rr)
	assert.Equal(t, "Welcome back, alex!", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestLogin_WithEmail(t *testing.T) {
	s := setupServer(t, nil)
	s.signupUser(t, "alex")

	rr := s.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"username": "alex@example.com",
		"password": "password12345",
	})
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := setupServer(t, nil)
	s.signupUser(t, "alex")

	// Wrong password and unknown user must be indistinguishable.
	wrongPassword := s.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"username": "alex",
		"password": "wrongpassword",
	})
	unknownUser := s.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"username": "nobody",
		"password": "password12345",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "Invalid username or password", decode(t, wrongPassword)["message"])
}

func TestLogin_MissingFields(t *testing.T) {
	s := setupServer(t, nil)

	rr := s.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"username": "alex",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Username and password are required", decode(t, rr)["message"])
}

func TestGoogleLogin(t *testing.T) {
	verifier := &stubVerifier{identity: &auth.Identity{Email: "fed@example.com", Name: "Fed"}}
	s := setupServer(t, verifier)

	rr := s.request(t, http.MethodPost, "/api/users/google", "", map[string]any{
		"idToken": "stub-token",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode(t, rr)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "fed@example.com", user["email"])

	// A second login resolves to the same account.
	var count int64
	s.db.Model(&entities.User{}).Where("email = ?", "fed@example.com").Count(&count)
	require.Equal(t, int64(1), count)

	rr = s.request(t, http.MethodPost, "/api/users/google", "", map[string]any{
		"idToken": "stub-token",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	s.db.Model(&entities.User{}).Where("email = ?", "fed@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGoogleLogin_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: auth.ErrInvalidAssertion}
	s := setupServer(t, verifier)

	rr := s.request(t, http.MethodPost, "/api/users/google", "", map[string]any{
		"idToken": "garbage",
	})
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid Google token", decode(t, rr)["message"])
}

func TestGoogleLogin_MissingToken(t *testing.T) {
	s := setupServer(t, &stubVerifier{})

	rr := s.request(t, http.MethodPost, "/api/users/google", "", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "idToken is required", decode(t, rr)["message"])
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	s := setupServer(t, nil)

	rr := s.request(t, http.MethodPost, "/api/users/google", "", map[string]any{
		"idToken": "stub-token",
	})
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestStatus(t *testing.T) {
	s := setupServer(t, nil)
	user, token := s.signupUser(t, "alex")

	// Anonymous
	rr := s.request(t, http.MethodGet, "/api/users/status", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decode(t, rr)["isAuthenticated"])

	// Garbage token still answers 200
	rr = s.request(t, http.MethodGet, "/api/users/status", "garbage", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decode(t, rr)["isAuthenticated"])

	// Authenticated
	rr = s.request(t, http.MethodGet, "/api/users/status", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, true, body["isAuthenticated"])
	assert.Equal(t, float64(user.ID), body["user"].(map[string]any)["id"])
}

func TestLogout(t *testing.T) {
	s := setupServer(t, nil)

	rr := s.request(t, http.MethodGet, "/api/users/logout", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Logged out successfully", decode(t, rr)["message"])
}
