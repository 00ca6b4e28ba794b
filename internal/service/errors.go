// Package service provides the application use cases for accounts and tasks.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is(); the API layer maps each one to an
// HTTP status code.
var (
	// ErrEmailTaken indicates registration with an email that already has an
	// account. API layer should map this to HTTP 400 Bad Request.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a login with an unknown email or a wrong
	// password. Both cases share this error so callers cannot tell them apart.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTaskNotFound indicates the requested task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Password length limits. bcrypt ignores input past 72 bytes.
const (
	PasswordMinLength = 6
	PasswordMaxLength = 72
)
