package testutil

import (
	"github.com/preston-bernstein/schedule-import-service/internal/app/imports"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/fixture"
	"github.com/preston-bernstein/schedule-import-service/internal/resolution"
	"github.com/preston-bernstein/schedule-import-service/internal/submission"
)

// NewImportService builds an import service backed by the fixture directory. Resolver and
// Submitter in cfg are filled in when nil.
func NewImportService(cfg imports.Config) (*imports.Service, *fixture.Directory) {
	dir := fixture.New()
	if cfg.Resolver == nil {
		cfg.Resolver = resolution.NewResolver(dir, cfg.Logger, cfg.Metrics)
	}
	if cfg.Submitter == nil {
		cfg.Submitter = submission.NewOrchestrator(dir, cfg.Logger, cfg.Metrics)
	}
	return imports.NewService(cfg), dir
}
