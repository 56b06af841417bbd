package server

import (
	"log/slog"

	"github.com/preston-bernstein/schedule-import-service/internal/config"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/pdfextract"
)

// providerFactory assembles the sports service with shared wrappers (rate limit, instrumentation, retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the configured provider. Each retry attempt waits on the limiter and is
// recorded separately.
func (f providerFactory) build(cfg config.Config) providers.SportsService {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

func (f providerFactory) wrap(cfg config.Config, base providers.SportsService) providers.SportsService {
	name := normalizeProviderName(cfg.Provider, base)
	instrumented := providers.NewInstrumented(base, name, f.metrics)
	limited := providers.NewRateLimited(instrumented, name, cfg.ScoreStream.RatePerSec, f.logger)
	return providers.NewRetrying(limited, name, cfg.ScoreStream.RetryAttempts, 0, f.logger)
}

// extractor returns nil when no PDF service is configured.
func (f providerFactory) extractor(cfg config.Config) *pdfextract.Client {
	if cfg.PDF.BaseURL == "" {
		return nil
	}
	return pdfextract.NewClient(pdfextract.Config{
		BaseURL: cfg.PDF.BaseURL,
		Timeout: cfg.PDF.Timeout,
		Logger:  f.logger,
	})
}

// BuildProvider returns the configured sports service with the shared wrappers applied.
// The CLI uses it to reach the same remote the server does.
func BuildProvider(cfg config.Config, logger *slog.Logger, rec *metrics.Recorder) providers.SportsService {
	return newProviderFactory(logger, rec).build(cfg)
}
