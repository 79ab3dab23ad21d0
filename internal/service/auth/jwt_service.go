// Package auth provides token issuing/verification and password hashing.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user.
	// The admin flag is embedded as a claim so downstream authorization
	// never needs a user lookup.
	GenerateToken(ctx context.Context, userID int64, isAdmin bool) (string, error)

	// ValidateToken validates an access token string and extracts the
	// claims. Returns ErrExpiredToken, ErrInvalidToken, or
	// ErrWrongTokenType on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token for the user.
	// Refresh tokens have a longer lifetime and are only good for obtaining
	// a new token pair.
	GenerateRefreshToken(ctx context.Context, userID int64, isAdmin bool) (string, error)

	// ValidateRefreshToken validates a refresh token string and extracts
	// the claims. Returns ErrExpiredToken, ErrInvalidToken, or
	// ErrWrongTokenType on failure.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded identity carried by a verified token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64 `json:"uid"`

	// IsAdmin mirrors the user's admin flag at issue time.
	IsAdmin bool `json:"adm"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	TokenType string `json:"type"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
