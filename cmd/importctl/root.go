package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/schedule-import-service/internal/app/imports"
	"github.com/preston-bernstein/schedule-import-service/internal/config"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/resolution"
	"github.com/preston-bernstein/schedule-import-service/internal/schedule"
	"github.com/preston-bernstein/schedule-import-service/internal/server"
	"github.com/preston-bernstein/schedule-import-service/internal/store"
	"github.com/preston-bernstein/schedule-import-service/internal/submission"
	"github.com/preston-bernstein/schedule-import-service/internal/wizard"
)

// options holds the flags shared by every subcommand.
type options struct {
	provider    string
	sport       string
	squadID     int
	segmentType string
	timezone    string
	state       string
	orgID       int
	output      string
	timeout     time.Duration
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "importctl",
		Short:         "Bulk schedule importer",
		Long:          "importctl reads a CSV or Excel schedule, matches its team names against the sports directory and creates the games.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.provider, "provider", "", "sports service provider: scorestream or fixture (default from PROVIDER)")
	flags.StringVar(&opts.sport, "sport", "", "sport name, e.g. football")
	flags.IntVar(&opts.squadID, "squad", 0, "squad id, e.g. 1010 for varsity boys")
	flags.StringVar(&opts.segmentType, "segment-type", "", "game segment type (defaults to the sport's first)")
	flags.StringVar(&opts.timezone, "timezone", "", "local timezone of the games")
	flags.StringVar(&opts.state, "state", "", "two-letter state used when a row has none")
	flags.IntVar(&opts.orgID, "org", 0, "organization id used to filter team searches")
	flags.StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Minute, "overall time limit")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every remote call")

	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newRunCmd(opts))
	return root
}

// update turns the default flags into a wizard defaults update. Unset flags are left nil.
func (o *options) update() wizard.DefaultsUpdate {
	var u wizard.DefaultsUpdate
	if o.sport != "" {
		sport := games.Sport(strings.ToLower(o.sport))
		u.Sport = &sport
	}
	if o.squadID != 0 {
		squad := o.squadID
		u.SquadID = &squad
	}
	if o.segmentType != "" {
		st := games.SegmentType(o.segmentType)
		u.SegmentType = &st
	}
	if o.timezone != "" {
		tz := o.timezone
		u.Timezone = &tz
	}
	if o.state != "" {
		state := strings.ToUpper(o.state)
		u.State = &state
	}
	if o.orgID != 0 {
		org := o.orgID
		u.OrgID = &org
	}
	return u
}

func (o *options) logger(cfg config.Config) *slog.Logger {
	level := cfg.Log.Level
	if o.verbose {
		level = "debug"
	} else if level == "" {
		level = "warn"
	}
	return logging.NewLogger(logging.Config{
		Level:  level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
}

// newService builds an import service against the configured provider. The CLI keeps its
// single session in the same store the server uses.
func (o *options) newService() *imports.Service {
	cfg := config.Load()
	if o.provider != "" {
		cfg.Provider = o.provider
	}
	logger := o.logger(cfg)
	provider := server.BuildProvider(cfg, logger, nil)

	resolver := resolution.NewResolver(provider, logger, nil,
		resolution.WithSearchCount(cfg.ScoreStream.SearchCount),
	)
	orchestrator := submission.NewOrchestrator(provider, logger, nil,
		submission.WithFinalSegmentID(cfg.ScoreStream.FinalSegmentID),
		submission.WithScoredStatus(cfg.Import.EmitScoredStatus),
	)
	return imports.NewService(imports.Config{
		Store:     store.NewSessionStore(),
		Resolver:  resolver,
		Submitter: orchestrator,
		Defaults:  server.ImportDefaults(cfg.Import),
		Logger:    logger,
	})
}

// resolveFile loads path into a new session and resolves every team name in it.
func (o *options) resolveFile(ctx context.Context, svc *imports.Service, path string) (store.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.Session{}, err
	}
	defer f.Close()

	table, err := schedule.Read(path, f)
	if err != nil {
		return store.Session{}, fmt.Errorf("read %s: %w", path, err)
	}
	sess, err := svc.Create(ctx, imports.CreateInput{
		FileName: path,
		Table:    table,
		Defaults: o.update(),
	})
	if err != nil {
		return store.Session{}, err
	}
	if err := svc.StartResolve(ctx, sess.ID); err != nil {
		return store.Session{}, err
	}
	if err := svc.Wait(ctx, sess.ID); err != nil {
		return store.Session{}, err
	}
	return svc.Get(sess.ID)
}
