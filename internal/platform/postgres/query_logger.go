package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/uptrace/bun"
)

// QueryLogger is a bun.QueryHook that logs every statement at debug level
// and failed statements at warn level. Query text is redacted.
type QueryLogger struct {
	logger *slog.Logger
}

var _ bun.QueryHook = (*QueryLogger)(nil)

// NewQueryLogger creates a QueryLogger. A nil logger falls back to slog.Default().
func NewQueryLogger(l *slog.Logger) *QueryLogger {
	if l == nil {
		l = slog.Default()
	}
	return &QueryLogger{logger: l.With(slog.String("component", "bun"))}
}

// BeforeQuery implements bun.QueryHook.
func (h *QueryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook.
func (h *QueryLogger) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	log := logger.FromContextOrDefault(ctx, h.logger)
	duration := time.Since(event.StartTime)

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		log.Warn("query failed",
			slog.String("operation", event.Operation()),
			slog.Int64("duration_ms", duration.Milliseconds()),
			slog.String("error", redact.Error(event.Err)))
		return
	}

	log.Debug("query executed",
		slog.String("operation", event.Operation()),
		slog.Int64("duration_ms", duration.Milliseconds()))
}
