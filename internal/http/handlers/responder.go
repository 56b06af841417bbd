package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/schedule-import-service/internal/app/imports"
	"github.com/preston-bernstein/schedule-import-service/internal/http/middleware"
	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/pdfextract"
	"github.com/preston-bernstein/schedule-import-service/internal/schedule"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps a service error to its status code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err, logging.FieldStatusCode, status)
		if status == http.StatusInternalServerError {
			message = "internal error"
		}
	}
	writeError(w, r, status, message, logger)
}

func statusFor(err error) int {
	var upstream *pdfextract.UpstreamError
	var rpcErr *providers.RPCError
	var rateErr *providers.RateLimitError
	switch {
	case errors.Is(err, imports.ErrSessionNotFound), errors.Is(err, imports.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, imports.ErrJobRunning), errors.Is(err, imports.ErrMultipleSchools):
		return http.StatusConflict
	case errors.Is(err, imports.ErrInvalidInput),
		errors.Is(err, imports.ErrNoGames),
		errors.Is(err, imports.ErrNothingToSubmit),
		errors.Is(err, providers.ErrInvalidRequest),
		errors.Is(err, schedule.ErrUnsupportedType),
		errors.Is(err, schedule.ErrEmptyFile),
		errors.Is(err, schedule.ErrNoDataRows),
		errors.Is(err, schedule.ErrTooManyRows):
		return http.StatusBadRequest
	case errors.Is(err, schedule.ErrFileTooLarge), errors.Is(err, pdfextract.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, imports.ErrPDFUnavailable), errors.Is(err, providers.ErrProviderUnavailable), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests
	case errors.As(err, &upstream), errors.As(err, &rpcErr), errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
