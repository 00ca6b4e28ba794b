package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", wantToken: "abc"},
		{name: "surrounding space", header: "  Bearer   abc  ", wantToken: "abc"},
		{name: "empty", header: "", wantErr: auth.ErrMissingToken},
		{name: "blank", header: "   ", wantErr: auth.ErrMissingToken},
		{name: "no token", header: "Bearer", wantErr: auth.ErrMalformedToken},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantErr: auth.ErrMalformedToken},
		{name: "token only", header: "abc.def.ghi", wantErr: auth.ErrMalformedToken},
		{name: "extra parts", header: "Bearer abc def", wantErr: auth.ErrMalformedToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, err := auth.ExtractBearerToken(tc.header)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantToken, token)
		})
	}
}

func TestGuard_Authenticate(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	dbErr := errors.New("connection refused")

	tests := []struct {
		name        string
		header      string
		validateErr error
		resolveErr  error
		wantErr     error
		wantAuthErr bool
		wantResolve int
	}{
		{name: "authenticated", header: "Bearer good", wantResolve: 1},
		{name: "missing header", header: "", wantErr: auth.ErrMissingToken, wantAuthErr: true},
		{name: "malformed header", header: "Token good", wantErr: auth.ErrMalformedToken, wantAuthErr: true},
		{
			name:        "expired token",
			header:      "Bearer old",
			validateErr: auth.ErrExpiredToken,
			wantErr:     auth.ErrExpiredToken,
			wantAuthErr: true,
		},
		{
			name:        "invalid token",
			header:      "Bearer forged",
			validateErr: auth.ErrInvalidToken,
			wantErr:     auth.ErrInvalidToken,
			wantAuthErr: true,
		},
		{
			name:        "identity gone",
			header:      "Bearer good",
			resolveErr:  auth.ErrIdentityNotFound,
			wantErr:     auth.ErrIdentityNotFound,
			wantAuthErr: true,
			wantResolve: 1,
		},
		{
			name:        "resolver failure",
			header:      "Bearer good",
			resolveErr:  fmt.Errorf("failed to resolve identity: %w", dbErr),
			wantErr:     dbErr,
			wantResolve: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens := &mocks.MockJWTService{
				Claims:      &auth.Claims{UserID: user.ID, Subject: user.ID.String()},
				ValidateErr: tc.validateErr,
			}
			if tc.validateErr != nil {
				tokens.Claims = nil
			}
			identities := &mocks.MockIdentityResolver{User: user, Err: tc.resolveErr}
			if tc.resolveErr != nil {
				identities.User = nil
			}

			guard := auth.NewGuard(tokens, identities, nil)
			got, err := guard.Authenticate(context.Background(), tc.header)

			assert.Equal(t, tc.wantResolve, identities.Calls)
			if tc.wantErr != nil {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.wantAuthErr, auth.IsAuthenticationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

func TestGuard_WithRealTokens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := mocks.NewMockUserStore()
	user, err := domain.NewUser("Alice", "alice@example.com", "hashed:secret")
	require.NoError(t, err)
	users.Add(user)

	tokens, err := auth.NewJWTService(testConfig())
	require.NoError(t, err)
	guard := auth.NewGuard(tokens, auth.NewIdentityResolver(users, nil), nil)

	token, err := tokens.GenerateToken(ctx, user.ID)
	require.NoError(t, err)

	got, err := guard.Authenticate(ctx, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, got.HashedPassword)

	orphan, err := tokens.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)
	_, err = guard.Authenticate(ctx, "Bearer "+orphan)
	assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
}

func TestIdentityResolver_Resolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	user, err := domain.NewUser("Bob", "bob@example.com", "hashed:pw")
	require.NoError(t, err)

	users := mocks.NewMockUserStore()
	users.Add(user)
	resolver := auth.NewIdentityResolver(users, nil)

	got, err := resolver.Resolve(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.HashedPassword, "hash must be stripped")

	_, err = resolver.Resolve(ctx, uuid.New())
	assert.ErrorIs(t, err, auth.ErrIdentityNotFound)

	storeErr := store.NewStoreError("user", "get", errors.New("timeout"))
	users.GetByIDFn = func(context.Context, uuid.UUID) (*domain.User, error) {
		return nil, storeErr
	}
	_, err = resolver.Resolve(ctx, user.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrIdentityNotFound)
	assert.ErrorIs(t, err, storeErr)
}
