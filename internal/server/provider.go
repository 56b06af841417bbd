package server

import (
	"log/slog"

	"github.com/preston-bernstein/schedule-import-service/internal/config"
	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/fixture"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/scorestream"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.SportsService {
	switch normalizeProviderName(cfg.Provider, nil) {
	case "fixture", "provider":
		return fixture.New()
	case "scorestream":
		if cfg.ScoreStream.APIKey == "" {
			logging.Warn(logger, "scorestream api key not set, remote calls will be rejected",
				logging.FieldProvider, "scorestream",
			)
		}
		return scorestream.NewClient(scorestream.Config{
			BaseURL:     cfg.ScoreStream.BaseURL,
			APIKey:      cfg.ScoreStream.APIKey,
			AccessToken: cfg.ScoreStream.AccessToken,
			Timeout:     cfg.ScoreStream.Timeout,
			Logger:      logger,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", logging.FieldProvider, cfg.Provider)
		return fixture.New()
	}
}
