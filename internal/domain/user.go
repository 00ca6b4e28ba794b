package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits for users.
const (
	UserNameMinLength = 2
	UserNameMaxLength = 100
)

// User represents a registered account.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NormalizeEmail trims and lower-cases an email so lookups and the unique
// constraint agree regardless of how the caller typed it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser creates a new User with the given name, email and password hash.
// The caller is responsible for hashing the password; the plaintext never
// reaches the domain object.
func NewUser(name, email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(name),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	verr := &ValidationError{}

	if u.ID == uuid.Nil {
		verr.Add("id", "cannot be empty")
	}

	if n := utf8.RuneCountInString(u.Name); n < UserNameMinLength || n > UserNameMaxLength {
		verr.Add("name", "must be between 2 and 100 characters")
	}

	if u.Email == "" {
		verr.Add("email", "cannot be empty")
	} else if _, err := mail.ParseAddress(u.Email); err != nil {
		verr.Add("email", "must be a valid email address")
	}

	if u.HashedPassword == "" {
		verr.Add("password", "hash cannot be empty")
	}

	return verr.OrNil()
}

// Public returns a copy of the user without the password hash.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.HashedPassword = ""
	return &cp
}
