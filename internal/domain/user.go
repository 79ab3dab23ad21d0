package domain

import (
	"errors"
	"strings"
	"time"
)

// Common user validation errors
var (
	ErrEmptyUserName     = errors.New("user name cannot be empty")
	ErrEmptyEmail        = errors.New("email cannot be empty")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrEmptyPhone        = errors.New("phone cannot be empty")
	ErrEmptyPasswordHash = errors.New("password hash cannot be empty")
)

// User represents a registered customer or administrator of the store.
// The password hash is never serialized in API responses.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose the password hash in JSON
	Phone        string    `json:"phone"`
	IsAdmin      bool      `json:"isAdmin"`
	Street       string    `json:"street"`
	Apartment    string    `json:"apartment"`
	Zip          string    `json:"zip"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser creates a User from the given identity fields and an
// already-hashed password. Address fields are optional and left to the
// caller. Returns an error if validation fails.
func NewUser(name, email, phone, passwordHash string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Phone == "" {
		return ErrEmptyPhone
	}

	if u.PasswordHash == "" {
		return ErrEmptyPasswordHash
	}

	return nil
}

// validEmailFormat performs a basic shape check: a local part, an "@",
// and a domain containing an interior dot. Request payloads get the
// stricter validator tag check before reaching the domain layer.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	dom := email[at+1:]
	dot := strings.Index(dom, ".")
	return dot > 0 && dot < len(dom)-1
}
