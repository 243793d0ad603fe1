// internal/auth/auth.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Annany2002/cafe-api/internal/logger"
)

var (
	ErrForbidden               = errors.New("invalid api key")
	ErrTokenMalformed          = errors.New("malformed token")
	ErrTokenExpired            = errors.New("token is expired or not valid yet")
	ErrTokenInvalid            = errors.New("invalid token")
	ErrUnexpectedSigningMethod = errors.New("unexpected token signing method")
	customLog                  = logger.NewLogger()
)

const csrfIssuer = "cafe-api"

// --- Admin API key ---

// APIKeyVerifier checks the admin key guarding destructive operations.
// Only a bcrypt hash of the configured key is kept in memory, and verification
// goes through bcrypt's constant-time comparison.
type APIKeyVerifier struct {
	hash []byte
}

// NewAPIKeyVerifier hashes the configured key with the given bcrypt cost.
func NewAPIKeyVerifier(apiKey string, cost int) (*APIKeyVerifier, error) {
	if apiKey == "" {
		return nil, errors.New("api key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), cost)
	if err != nil {
		customLog.Warnf("Error generating bcrypt hash for api key: %v", err)
		return nil, fmt.Errorf("failed to hash api key: %w", err)
	}
	return &APIKeyVerifier{hash: hash}, nil
}

// Verify returns ErrForbidden unless candidate equals the configured key.
func (v *APIKeyVerifier) Verify(candidate string) error {
	if candidate == "" {
		return ErrForbidden
	}
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(candidate))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			customLog.Warnf("Unexpected error comparing api key hash: %v", err)
		}
		return ErrForbidden
	}
	return nil
}

// --- CSRF form tokens ---

// CSRFClaims are the claims of a token embedded in the add-cafe form.
type CSRFClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

const csrfPurpose = "add-cafe-form"

// GenerateCSRFToken issues a signed token for one rendering of the add-cafe form.
func GenerateCSRFToken(secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := CSRFClaims{
		Purpose: csrfPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    csrfIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		customLog.Warnf("Error signing CSRF token: %v", err)
		return "", fmt.Errorf("failed to generate csrf token")
	}
	return signed, nil
}

// ValidateCSRFToken parses and validates a token produced by GenerateCSRFToken.
func ValidateCSRFToken(tokenString, secret string) error {
	if tokenString == "" {
		return ErrTokenMalformed
	}

	claims := &CSRFClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedSigningMethod, token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(csrfIssuer))

	if err != nil {
		customLog.Debugf("ValidateCSRFToken: Token parsing error: %v", err)
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
			return ErrTokenExpired
		case errors.Is(err, ErrUnexpectedSigningMethod):
			return err
		default:
			return ErrTokenInvalid
		}
	}

	if !token.Valid || claims.Purpose != csrfPurpose {
		return ErrTokenInvalid
	}
	return nil
}
