package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures are collapsed into three sentinel values so callers
// can map them to HTTP statuses without inspecting jwt internals.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
)

// tokenClaims embeds the registered claim set and adds the user ID.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"uid"`
}

// TokenManager issues and verifies stateless bearer tokens. The secret is
// read-only after construction and safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager signing with the given secret.
// Tokens expire ttl after issuance.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("signing secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token ttl: %v", ttl)
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue mints a signed token carrying the user ID, the issue time and the
// expiry. Pure computation, no side effects.
func (m *TokenManager) Issue(userID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(m.secret)
}

// Verify checks signature and expiry and returns the embedded user ID.
// Returns ErrTokenExpired, ErrTokenSignature or ErrTokenMalformed.
func (m *TokenManager) Verify(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrTokenMalformed
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignature
		default:
			return 0, ErrTokenMalformed
		}
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, ErrTokenMalformed
	}

	return claims.UserID, nil
}
