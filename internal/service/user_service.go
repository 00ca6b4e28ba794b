package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserService provides account operations.
type UserService interface {
	// Register creates an account and returns it with a fresh access token.
	// Returns ErrEmailTaken if the email already has an account.
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)

	// Login verifies credentials and returns the user with a fresh access token.
	// Returns ErrInvalidCredentials for an unknown email or a wrong password.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	// Profile returns the user's public record.
	Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens auth.JWTService
	logger *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
) UserService {
	if users == nil || hasher == nil || tokens == nil {
		panic("user service dependencies cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("component", "user_service"),
	}
}

// Register implements UserService.
func (s *UserServiceImpl) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if n := len(in.Password); n < PasswordMinLength || n > PasswordMaxLength {
		return nil, "", domain.NewValidationError("password",
			fmt.Sprintf("must be between %d and %d characters", PasswordMinLength, PasswordMaxLength))
	}

	email := domain.NormalizeEmail(in.Email)
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		log.Debug("registration rejected: email already registered")
		return nil, "", ErrEmailTaken
	case !errors.Is(err, store.ErrUserNotFound):
		log.Error("failed to check existing email", "error", err)
		return nil, "", fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(in.Name, email, hashed)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration lost race for email")
			return nil, "", ErrEmailTaken
		}
		log.Error("failed to save user", "error", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user.Public(), token, nil
}

// Login implements UserService.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login failed: unknown email")
			return nil, "", ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", "error", err)
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", "user_id", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return user.Public(), token, nil
}

// Profile implements UserService.
func (s *UserServiceImpl) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user.Public(), nil
}
