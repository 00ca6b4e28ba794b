package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

const bearerScheme = "bearer"

// Guard authenticates requests from their Authorization header.
type Guard struct {
	tokens     JWTService
	identities IdentityResolver
	logger     *slog.Logger
}

// NewGuard creates a Guard.
func NewGuard(tokens JWTService, identities IdentityResolver, l *slog.Logger) *Guard {
	if tokens == nil {
		panic("tokens cannot be nil") // ALLOW-PANIC
	}
	if identities == nil {
		panic("identities cannot be nil") // ALLOW-PANIC
	}
	if l == nil {
		l = slog.Default()
	}
	return &Guard{
		tokens:     tokens,
		identities: identities,
		logger:     l.With(slog.String("component", "auth_guard")),
	}
}

// Authenticate verifies the bearer token in authorizationHeader and returns
// the identity it names. Authentication failures satisfy
// IsAuthenticationError; any other error is an internal failure.
func (g *Guard) Authenticate(ctx context.Context, authorizationHeader string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	token, err := ExtractBearerToken(authorizationHeader)
	if err != nil {
		log.Debug("authorization header rejected", "reason", err.Error())
		return nil, err
	}

	claims, err := g.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := g.identities.Resolve(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ExtractBearerToken returns the token of a "Bearer <token>" header. The
// scheme is matched case-insensitively.
func ExtractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", ErrMalformedToken
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrMalformedToken
	}
	return token, nil
}
