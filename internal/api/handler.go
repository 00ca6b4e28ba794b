package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// errorResponder writes error responses the same way for every handler.
type errorResponder struct {
	exposeErrors bool
}

// handleError maps err to a status and writes the envelope. Validation
// failures keep their field detail; unexpected errors only expose their text
// when exposeErrors is set.
func (e errorResponder) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		shared.RespondWithValidationError(w, r, verr.Fields)
		return
	}

	status := MapErrorToStatusCode(err)
	opts := []shared.ResponseOption{}
	if status >= http.StatusInternalServerError {
		opts = append(opts, shared.WithErrorDetail(e.exposeErrors))
	}
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

func componentLogger(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With(slog.String("component", name))
}
