package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID string   `json:"uid"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating access tokens.
// Tokens identify the user the local agent is acting for.
type TokenService interface {
	// GenerateToken creates an access token for a given user.
	GenerateToken(userID string, roles []string) (string, error)

	// ValidateToken checks the validity of a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenDuration returns the configured access token lifetime.
	TokenDuration() time.Duration
}
