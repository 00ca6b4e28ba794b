package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// normalizer is implemented by request models that clean their input
// before validation.
type normalizer interface {
	normalize()
}

// decodeAndValidate reads the JSON body into req, normalizes and validates
// it. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req normalizer) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	req.normalize()

	if err := shared.ValidateRequest(req); err != nil {
		respondWithValidation(w, r, err)
		return false
	}
	return true
}

// respondWithValidation writes a 400 with field detail when err carries it.
func respondWithValidation(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		shared.RespondWithValidationError(w, r, verr.Fields)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
}

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required")
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "must be a valid UUID")
	}
	return id, nil
}

// requireUserID returns the authenticated caller's ID. The auth middleware
// guarantees one on protected routes; a missing caller means the route was
// mounted outside it, which is reported as 401.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authorized, no token")
		return uuid.Nil, false
	}
	return id, true
}
