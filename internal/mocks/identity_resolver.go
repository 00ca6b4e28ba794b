package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// MockIdentityResolver implements auth.IdentityResolver for testing
type MockIdentityResolver struct {
	ResolveFn func(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	User  *domain.User
	Err   error
	Calls int
}

var _ auth.IdentityResolver = (*MockIdentityResolver)(nil)

// Resolve implements the auth.IdentityResolver interface
func (m *MockIdentityResolver) Resolve(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	m.Calls++
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, userID)
	}
	return m.User, m.Err
}
