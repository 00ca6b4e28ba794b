package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// IdentityResolver maps a verified user id to the current user record.
type IdentityResolver interface {
	// Resolve returns the user without its password hash, or
	// ErrIdentityNotFound when the user no longer exists.
	Resolve(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// StoreIdentityResolver resolves identities with one UserStore lookup per call.
type StoreIdentityResolver struct {
	users  store.UserStore
	logger *slog.Logger
}

var _ IdentityResolver = (*StoreIdentityResolver)(nil)

// NewIdentityResolver creates a StoreIdentityResolver.
func NewIdentityResolver(users store.UserStore, l *slog.Logger) *StoreIdentityResolver {
	if users == nil {
		panic("users store cannot be nil") // ALLOW-PANIC
	}
	if l == nil {
		l = slog.Default()
	}
	return &StoreIdentityResolver{
		users:  users,
		logger: l.With(slog.String("component", "identity_resolver")),
	}
}

// Resolve implements IdentityResolver.
func (r *StoreIdentityResolver) Resolve(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, r.logger).Debug("token subject no longer exists",
				slog.String("user_id", userID.String()))
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	return user.Public(), nil
}
