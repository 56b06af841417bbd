// Package http assembles the chi router for the import API.
package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/schedule-import-service/internal/http/handlers"
	"github.com/preston-bernstein/schedule-import-service/internal/http/middleware"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
)

// NewRouter registers every route on a chi router wrapped in logging and panic recovery.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/options", h.Options)

	r.Route("/imports", func(r chi.Router) {
		r.Post("/", h.CreateImport)
		r.Post("/pdf", h.ExtractPDF)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetImport)
			r.Delete("/", h.ResetImport)
			r.Put("/defaults", h.UpdateDefaults)
			r.Post("/resolve", h.Resolve)
			r.Post("/submit", h.Submit)
			r.Get("/results.csv", h.ResultsCSV)
			r.Get("/results.xlsx", h.ResultsXLSX)

			r.Post("/games/select-all", h.SelectAll)
			r.Patch("/games/{gameID}", h.UpdateGame)
			r.Post("/games/{gameID}/toggle", h.ToggleGame)
			r.Post("/games/{gameID}/{side}/search", h.SearchSide)
			r.Post("/games/{gameID}/{side}/select", h.SelectSide)
		})
	})
	return r
}
