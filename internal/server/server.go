// Package server wires configuration, providers, the import service and HTTP transport.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/schedule-import-service/internal/app/imports"
	"github.com/preston-bernstein/schedule-import-service/internal/config"
	httpserver "github.com/preston-bernstein/schedule-import-service/internal/http"
	"github.com/preston-bernstein/schedule-import-service/internal/http/handlers"
	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
	"github.com/preston-bernstein/schedule-import-service/internal/resolution"
	"github.com/preston-bernstein/schedule-import-service/internal/store"
	"github.com/preston-bernstein/schedule-import-service/internal/submission"
	"github.com/preston-bernstein/schedule-import-service/internal/sweeper"
	"github.com/preston-bernstein/schedule-import-service/internal/wizard"
)

var metricsSetup = metrics.Setup

// Sweeper is the background session pruner the server starts and stops.
type Sweeper interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() sweeper.Status
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	imports       *imports.Service
	httpServer    httpServer
	metricsServer httpServer
	sweeper       Sweeper
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithProvider(cfg, logger, nil, nil)
}

// newServerWithProvider builds the full stack. A nil provider is selected from cfg; a nil
// recorder is built from the metrics config.
func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.SportsService, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	sessions := store.NewSessionStore()
	svc := buildImportService(cfg, factory, sessions, provider, logger, recorder)
	swp := sweeper.New(svc, logger, recorder, cfg.Import.SweepInterval, cfg.Import.SessionTTL)
	handler := handlers.NewHandler(svc, logger, swp.Status)
	router := httpserver.NewRouter(handler, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		imports:       svc,
		httpServer:    newNetHTTPServer(cfg.Port, router),
		metricsServer: metricsSrv,
		sweeper:       swp,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *imports.Service, httpSrv httpServer, swp Sweeper) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		imports:    svc,
		httpServer: httpSrv,
		sweeper:    swp,
	}
}

func buildImportService(cfg config.Config, factory providerFactory, sessions *store.SessionStore, provider providers.SportsService, logger *slog.Logger, recorder *metrics.Recorder) *imports.Service {
	resolver := resolution.NewResolver(provider, logger, recorder,
		resolution.WithSearchCount(cfg.ScoreStream.SearchCount),
	)
	orchestrator := submission.NewOrchestrator(provider, logger, recorder,
		submission.WithFinalSegmentID(cfg.ScoreStream.FinalSegmentID),
		submission.WithScoredStatus(cfg.Import.EmitScoredStatus),
	)

	svcCfg := imports.Config{
		Store:     sessions,
		Resolver:  resolver,
		Submitter: orchestrator,
		Defaults:  ImportDefaults(cfg.Import),
		Logger:    logger,
		Metrics:   recorder,
	}
	if extractor := factory.extractor(cfg); extractor != nil {
		svcCfg.Extractor = extractor
	}
	return imports.NewService(svcCfg)
}

// ImportDefaults turns the configured importer defaults into the update every new session starts from.
func ImportDefaults(cfg config.ImportConfig) wizard.DefaultsUpdate {
	var update wizard.DefaultsUpdate
	if cfg.Timezone != "" {
		tz := cfg.Timezone
		update.Timezone = &tz
	}
	if cfg.OrgID != 0 {
		org := cfg.OrgID
		update.OrgID = &org
	}
	if cfg.State != "" {
		state := cfg.State
		update.State = &state
	}
	return update
}

// Run starts the sweeper and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.sweeper.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", "addr", s.httpServer.Addr())
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", "addr", s.metricsServer.Addr())
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.sweeper.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop sweeper", err)
	}

	if s.imports != nil {
		if err := s.imports.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "import jobs did not stop in time", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + cfg.Metrics.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
