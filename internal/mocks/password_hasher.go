package mocks

import (
	"strings"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// mockHashPrefix marks values produced by MockPasswordHasher.Hash.
const mockHashPrefix = "hashed:"

// MockPasswordHasher implements auth.PasswordHasher for testing. Its default
// hash is reversible, which keeps tests fast and outputs predictable.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	HashErr error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return mockHashPrefix + password, nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, mockHashPrefix) ||
		strings.TrimPrefix(hashedPassword, mockHashPrefix) != password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
