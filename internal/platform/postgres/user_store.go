package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/uptrace/bun"
)

// BunUserStore implements store.UserStore on top of bun.
type BunUserStore struct {
	db     bun.IDB
	logger *slog.Logger
}

var _ store.UserStore = (*BunUserStore)(nil)

// NewUserStore creates a BunUserStore. db may be a *bun.DB or a bun.Tx.
func NewUserStore(db bun.IDB, l *slog.Logger) *BunUserStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}
	if l == nil {
		l = slog.Default()
	}
	return &BunUserStore{
		db:     db,
		logger: l.With(slog.String("component", "user_store")),
	}
}

// Create inserts a user. The email must already be normalized.
func (s *BunUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	if _, err := s.db.NewInsert().Model(newUserModel(user)).Exec(ctx); err != nil {
		if IsUniqueViolation(err) {
			log.Debug("user email already exists", slog.String("user_id", user.ID.String()))
			return store.NewStoreError("user", "create", store.ErrEmailExists)
		}
		return store.NewStoreError("user", "create", MapError(err))
	}

	log.Debug("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID retrieves a user by ID.
func (s *BunUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m := new(userModel)
	err := s.db.NewSelect().Model(m).Where("u.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, s.getError(err)
	}
	return m.toDomain(), nil
}

// GetByEmail retrieves a user by email, normalizing it first.
func (s *BunUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m := new(userModel)
	err := s.db.NewSelect().
		Model(m).
		Where("u.email = ?", domain.NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, s.getError(err)
	}
	return m.toDomain(), nil
}

func (s *BunUserStore) getError(err error) error {
	mapped := MapError(err)
	if errors.Is(mapped, store.ErrNotFound) {
		return store.ErrUserNotFound
	}
	return store.NewStoreError("user", "get", mapped)
}
