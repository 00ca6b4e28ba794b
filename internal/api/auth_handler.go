package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	errorResponder
	users         service.UserService
	tokenLifetime time.Duration
	timeFunc      func() time.Time
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	users service.UserService,
	tokenLifetime time.Duration,
	exposeErrors bool,
	logger *slog.Logger,
) *AuthHandler {
	if users == nil {
		panic("users service cannot be nil") // ALLOW-PANIC
	}
	return &AuthHandler{
		errorResponder: errorResponder{exposeErrors: exposeErrors},
		users:          users,
		tokenLifetime:  tokenLifetime,
		timeFunc:       time.Now,
		logger:         componentLogger(logger, "auth_handler"),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// Compute expiry before issuing so it never exceeds the token's own.
	expiresAt := h.expiresAt()
	user, token, err := h.users.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("registration succeeded",
		"user_id", user.ID)

	shared.RespondWithSuccess(w, r, http.StatusCreated, "User registered successfully", AuthResponse{
		User:      newUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	expiresAt := h.expiresAt()
	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Login successful", AuthResponse{
		User:      newUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.Profile(r.Context(), callerID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", ProfileResponse{User: newUserResponse(user)})
}

func (h *AuthHandler) expiresAt() time.Time {
	return h.timeFunc().UTC().Add(h.tokenLifetime).Truncate(time.Second)
}
