package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Task represents a single todo item. OwnerID is empty in the console
// application and holds the owning user's id in the web API.
type Task struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"user_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// User is an account in the multi-user API. The hashed password never
// appears in JSON output.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Sentinel errors shared by the stores, services and HTTP handlers.
var (
	ErrEmptyTitle      = errors.New("task title must not be empty")
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("username or email already exists")
	ErrInvalidUsername = errors.New("username must be 3-50 characters of letters, digits or underscore")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrShortPassword   = errors.New("password must be at least 8 characters")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidateTitle trims the title and rejects empty or whitespace-only input.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	return trimmed, nil
}

// ValidateUsername checks the 3-50 alphanumeric-or-underscore rule.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateEmail checks the address shape, not deliverability.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the minimum length for new credentials.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrShortPassword
	}
	return nil
}
