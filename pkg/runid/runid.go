package runid

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey struct{}

// Start returns a child of ctx that carries a new run id, and that id.
func Start(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, contextKey{}, id), id
}

// FromContext returns the run id of ctx, or an empty string outside of a run.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// Logger returns the named global logger. Within a run every entry carries
// the run id.
func Logger(ctx context.Context, name string) *zap.SugaredLogger {
	logger := zap.S().Named(name)
	if id := FromContext(ctx); id != "" {
		return logger.With("run_id", id)
	}
	return logger
}
