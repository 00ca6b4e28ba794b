package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	user *domain.User
	err  error
	got  string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, header string) (*domain.User, error) {
	s.got = header
	return s.user, s.err
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	tests := []struct {
		name        string
		user        *domain.User
		err         error
		wantStatus  int
		wantMessage string
		wantNext    bool
	}{
		{name: "authenticated", user: user, wantStatus: http.StatusOK, wantNext: true},
		{
			name:        "missing token",
			err:         auth.ErrMissingToken,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Not authorized, no token",
		},
		{
			name:        "expired token",
			err:         auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Not authorized, token failed",
		},
		{
			name:        "identity gone",
			err:         auth.ErrIdentityNotFound,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Not authorized, token failed",
		},
		{
			name:        "resolver failure",
			err:         errors.New("database unavailable"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthenticator{user: tc.user, err: tc.err}
			mw := NewAuthMiddleware(stub, false)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got, ok := UserFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, user.ID, got.ID)

				id, ok := GetUserID(r)
				require.True(t, ok)
				assert.Equal(t, user.ID, id)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			req.Header.Set("Authorization", "Bearer token-value")
			rec := httptest.NewRecorder()
			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, "Bearer token-value", stub.got)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantNext, nextCalled)
			if tc.wantMessage != "" {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tc.wantMessage, body["message"])
				assert.NotContains(t, body, "error")
			}
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	t.Parallel()

	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}
