package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

type userContextKey struct{}

// Authenticator resolves the caller of a request from its Authorization header.
type Authenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (*domain.User, error)
}

var _ Authenticator = (*auth.Guard)(nil)

// AuthMiddleware provides bearer token authentication for routes.
type AuthMiddleware struct {
	authenticator Authenticator
	exposeErrors  bool
}

// NewAuthMiddleware creates a new AuthMiddleware. exposeErrors adds internal
// error text to 500 responses.
func NewAuthMiddleware(authenticator Authenticator, exposeErrors bool) *AuthMiddleware {
	if authenticator == nil {
		panic("authenticator cannot be nil") // ALLOW-PANIC
	}
	return &AuthMiddleware{
		authenticator: authenticator,
		exposeErrors:  exposeErrors,
	}
}

// Authenticate rejects requests without a valid bearer token and makes the
// caller available to the wrapped handler through UserFromContext.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.authenticator.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authorized, no token")
			case auth.IsAuthenticationError(err):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					"Not authorized, token failed", err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Server error", err, shared.WithErrorDetail(m.exposeErrors))
			}
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		log := logger.FromContext(ctx).With(slog.String("user_id", user.ID.String()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated caller of the request.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*domain.User)
	return user, ok && user != nil
}

// GetUserID extracts the authenticated user's ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}
