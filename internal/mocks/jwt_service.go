package mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nverra/storefront-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn        func(ctx context.Context, userID int64, isAdmin bool) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID int64, isAdmin bool) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Errors returned by the default implementations when set
	GenerateError error
	ValidateError error
}

// NewMockJWTService creates a new mock JWT service
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{}
}

// The default implementations encode the claims in the token string itself
// so tests can round-trip tokens without real signing.

func encodeMockToken(tokenType string, userID int64, isAdmin bool) string {
	return fmt.Sprintf("%s:%d:%t", tokenType, userID, isAdmin)
}

func decodeMockToken(tokenString, wantType string) (*auth.Claims, error) {
	parts := strings.Split(tokenString, ":")
	if len(parts) != 3 {
		return nil, auth.ErrInvalidToken
	}
	if parts[0] != wantType {
		return nil, auth.ErrWrongTokenType
	}

	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	return &auth.Claims{
		UserID:    userID,
		IsAdmin:   parts[2] == "true",
		TokenType: parts[0],
		Subject:   parts[1],
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}, nil
}

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(
	ctx context.Context,
	userID int64,
	isAdmin bool,
) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, isAdmin)
	}
	if m.GenerateError != nil {
		return "", m.GenerateError
	}
	return encodeMockToken("access", userID, isAdmin), nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.ValidateError != nil {
		return nil, m.ValidateError
	}
	return decodeMockToken(tokenString, "access")
}

// GenerateRefreshToken implements the JWTService interface
func (m *MockJWTService) GenerateRefreshToken(
	ctx context.Context,
	userID int64,
	isAdmin bool,
) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID, isAdmin)
	}
	if m.GenerateError != nil {
		return "", m.GenerateError
	}
	return encodeMockToken("refresh", userID, isAdmin), nil
}

// ValidateRefreshToken implements the JWTService interface
func (m *MockJWTService) ValidateRefreshToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	if m.ValidateError != nil {
		return nil, m.ValidateError
	}
	return decodeMockToken(tokenString, "refresh")
}

// Ensure MockJWTService implements auth.JWTService
var _ auth.JWTService = (*MockJWTService)(nil)
