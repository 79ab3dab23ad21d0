package mocks

import (
	"errors"

	"github.com/nverra/storefront-api/internal/service/auth"
)

// ErrPasswordMismatch is returned by the default Compare implementation
// when the plaintext does not match the stored value.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher and
// auth.PasswordVerifier for testing. The default implementation stores
// passwords with a recognizable prefix instead of real hashing.
type MockPasswordHasher struct {
	// Function fields for customizable behavior
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// HashError makes the default Hash implementation fail when set
	HashError error
}

// NewMockPasswordHasher creates a new mock password hasher
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

// Hash implements the PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashError != nil {
		return "", m.HashError
	}
	return "hashed:" + password, nil
}

// Compare implements the PasswordVerifier interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return ErrPasswordMismatch
	}
	return nil
}

// Ensure MockPasswordHasher implements both password interfaces
var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)
