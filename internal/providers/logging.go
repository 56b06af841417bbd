package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/schedule-import-service/internal/logging"
)

// logWithProvider emits a log entry if a logger is available and always includes provider and operation.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider, operation, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	args = append(args,
		slog.String(logging.FieldProvider, provider),
		slog.String(logging.FieldOperation, operation),
	)
	logger.Log(ctx, level, msg, args...)
}
