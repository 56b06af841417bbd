// Package imports runs import sessions: creating them from uploads, resolving teams and
// submitting games in the background, and applying user edits.
package imports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/pdfextract"
	"github.com/preston-bernstein/schedule-import-service/internal/resolution"
	"github.com/preston-bernstein/schedule-import-service/internal/schedule"
	"github.com/preston-bernstein/schedule-import-service/internal/store"
	"github.com/preston-bernstein/schedule-import-service/internal/submission"
	"github.com/preston-bernstein/schedule-import-service/internal/wizard"
)

const (
	JobResolve = "resolve"
	JobSubmit  = "submit"
)

var (
	ErrSessionNotFound = store.ErrSessionNotFound
	ErrGameNotFound    = errors.New("game not found")
	ErrJobRunning      = errors.New("a job is already running for this session")
	ErrNoGames         = errors.New("no games to import")
	ErrNothingToSubmit = errors.New("no selected games are ready to submit")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPDFUnavailable  = errors.New("pdf extraction is not configured")
	ErrMultipleSchools = errors.New("document lists multiple schools, choose one")
)

// Resolver resolves team sides.
type Resolver interface {
	ResolveAll(ctx context.Context, rows []games.GameRow, scope resolution.Scope, onProgress resolution.ProgressFunc) ([]games.GameRow, error)
	ManualSearch(ctx context.Context, side games.TeamResolution, query string, scope resolution.Scope) (games.TeamResolution, error)
}

// Submitter creates games remotely.
type Submitter interface {
	Submit(ctx context.Context, rows []games.GameRow, defaults games.Defaults, onProgress submission.ProgressFunc) ([]games.SubmissionResult, error)
}

// Extractor pulls games out of PDF schedules.
type Extractor interface {
	Extract(ctx context.Context, filename string, r io.Reader, school string) (pdfextract.Result, error)
}

// Service coordinates sessions, their background jobs and the remote collaborators.
type Service struct {
	store     *store.SessionStore
	resolver  Resolver
	submitter Submitter
	extractor Extractor
	defaults  wizard.DefaultsUpdate
	logger    *slog.Logger
	metrics   *metrics.Recorder
	newID     schedule.IDFunc

	base   context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	jobs map[string]*job
	wg   sync.WaitGroup
}

type job struct {
	kind   string
	cancel context.CancelFunc
	done   chan struct{}
}

// Config wires a Service. Extractor and Defaults are optional.
type Config struct {
	Store     *store.SessionStore
	Resolver  Resolver
	Submitter Submitter
	Extractor Extractor
	Defaults  wizard.DefaultsUpdate
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
}

// NewService constructs a Service.
func NewService(cfg Config) *Service {
	st := cfg.Store
	if st == nil {
		st = store.NewSessionStore()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Service{
		store:     st,
		resolver:  cfg.Resolver,
		submitter: cfg.Submitter,
		extractor: cfg.Extractor,
		defaults:  cfg.Defaults,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		newID:     uuid.NewString,
		base:      base,
		cancel:    cancel,
		jobs:      make(map[string]*job),
	}
}

// CreateInput describes a parsed upload.
type CreateInput struct {
	FileName string
	Table    schedule.Table
	// Mapping overrides the detected column for every non-empty field.
	Mapping  schedule.Mapping
	Defaults wizard.DefaultsUpdate
}

// Create starts a session from a parsed table. Columns are auto-detected and then
// overridden by in.Mapping.
func (s *Service) Create(ctx context.Context, in CreateInput) (store.Session, error) {
	mapping := schedule.DetectMapping(in.Table.Headers).Merge(in.Mapping)
	if err := mapping.Validate(); err != nil {
		return store.Session{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	rows := schedule.BuildGames(in.Table.Rows, mapping, s.newID)
	if len(rows) == 0 {
		return store.Session{}, ErrNoGames
	}

	sess := s.store.Create(
		wizard.SetFile{Name: in.FileName, Headers: in.Table.Headers, Rows: in.Table.Rows},
		wizard.SetDefaults{Update: s.defaults},
		wizard.SetDefaults{Update: in.Defaults},
		wizard.SetColumnMapping{Mapping: mapping},
		wizard.SetGames{Games: rows},
		wizard.SetStep{Step: wizard.StepQueue},
	)
	logging.Info(logging.FromContext(ctx, s.logger), "import session created",
		logging.FieldSessionID, sess.ID,
		logging.FieldCount, len(rows),
	)
	return sess, nil
}

// CreateFromPDF extracts games from a PDF schedule and starts a session with them. When the
// document covers several schools the extraction result is returned with ErrMultipleSchools
// and no session is created.
func (s *Service) CreateFromPDF(ctx context.Context, filename string, r io.Reader, school string, update wizard.DefaultsUpdate) (store.Session, pdfextract.Result, error) {
	if s.extractor == nil {
		return store.Session{}, pdfextract.Result{}, ErrPDFUnavailable
	}
	result, err := s.extractor.Extract(ctx, filename, r, school)
	if err != nil {
		if errors.Is(err, pdfextract.ErrNotPDF) || errors.Is(err, pdfextract.ErrTooLarge) {
			return store.Session{}, result, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return store.Session{}, result, err
	}
	if result.MultipleSchools {
		return store.Session{}, result, ErrMultipleSchools
	}
	rows := schedule.FromExtracted(result.Games, s.newID)
	if len(rows) == 0 {
		return store.Session{}, result, ErrNoGames
	}
	if update.State == nil && result.MainState != "" {
		state := result.MainState
		update.State = &state
	}

	sess := s.store.Create(
		wizard.SetFile{Name: filename},
		wizard.SetDefaults{Update: s.defaults},
		wizard.SetDefaults{Update: update},
		wizard.SetGames{Games: rows},
		wizard.SetStep{Step: wizard.StepQueue},
	)
	logging.Info(logging.FromContext(ctx, s.logger), "import session created from pdf",
		logging.FieldSessionID, sess.ID,
		logging.FieldCount, len(rows),
		"completed", result.CompletedCount(),
	)
	return sess, result, nil
}

// Get returns a session snapshot.
func (s *Service) Get(id string) (store.Session, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return store.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// RunningJob returns the kind of the job running for a session, or "".
func (s *Service) RunningJob(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		return j.kind
	}
	return ""
}

// Reset cancels any running job and returns the session to its initial state. Writes from
// the cancelled job are discarded.
func (s *Service) Reset(ctx context.Context, id string) (store.Session, error) {
	s.cancelJob(id)
	sess, err := s.store.Reset(id)
	if err != nil {
		return store.Session{}, err
	}
	logging.Info(logging.FromContext(ctx, s.logger), "import session reset", logging.FieldSessionID, id)
	return sess, nil
}

// UpdateDefaults merges a defaults update into the session.
func (s *Service) UpdateDefaults(id string, update wizard.DefaultsUpdate) (store.Session, error) {
	return s.store.Dispatch(id, wizard.SetDefaults{Update: update})
}

// UpdateGame edits the date, time, scores or selection of one row.
func (s *Service) UpdateGame(id, gameID string, update wizard.GameUpdate) (store.Session, error) {
	if _, _, err := s.game(id, gameID); err != nil {
		return store.Session{}, err
	}
	return s.store.Dispatch(id, wizard.UpdateGame{ID: gameID, Update: update})
}

// ToggleGame flips the selection of one row.
func (s *Service) ToggleGame(id, gameID string) (store.Session, error) {
	if _, _, err := s.game(id, gameID); err != nil {
		return store.Session{}, err
	}
	return s.store.Dispatch(id, wizard.ToggleGameSelection{ID: gameID})
}

// SelectAll sets the selection of every ready row.
func (s *Service) SelectAll(id string, selected bool) (store.Session, error) {
	return s.store.Dispatch(id, wizard.SelectAllGames{Selected: selected})
}

// Search runs a manual team search for one side and stores the candidates.
func (s *Service) Search(ctx context.Context, id, gameID string, side games.Side, query string) (store.Session, error) {
	if !side.Valid() {
		return store.Session{}, fmt.Errorf("%w: unknown side %q", ErrInvalidInput, side)
	}
	sess, row, err := s.game(id, gameID)
	if err != nil {
		return store.Session{}, err
	}
	if s.RunningJob(id) == JobResolve {
		return store.Session{}, ErrJobRunning
	}

	if logger := logging.FromContext(ctx, s.logger); logger != nil {
		ctx = logging.WithLogger(ctx, logger.With(logging.FieldSessionID, id, logging.FieldGameRowID, gameID, logging.FieldSide, string(side)))
	}
	res, err := s.resolver.ManualSearch(ctx, row.Resolution(side), query, resolution.ScopeFromDefaults(sess.State.Defaults))
	if err != nil {
		if errors.Is(err, resolution.ErrQueryTooShort) {
			return store.Session{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return store.Session{}, err
	}
	return s.store.DispatchAt(id, sess.Epoch, wizard.SetSearchResults{GameID: gameID, Side: side, Results: res.SearchResults})
}

// Select matches one side with a team from its search results.
func (s *Service) Select(id, gameID string, side games.Side, teamID int) (store.Session, error) {
	if !side.Valid() {
		return store.Session{}, fmt.Errorf("%w: unknown side %q", ErrInvalidInput, side)
	}
	sess, row, err := s.game(id, gameID)
	if err != nil {
		return store.Session{}, err
	}
	if s.RunningJob(id) == JobResolve {
		return store.Session{}, ErrJobRunning
	}
	res, err := resolution.SelectTeam(row.Resolution(side), teamID)
	if err != nil {
		return store.Session{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.store.DispatchAt(id, sess.Epoch, wizard.UpdateTeamResolution{GameID: gameID, Side: side, Resolution: res})
}

// StartResolve resolves every row of the session in the background.
func (s *Service) StartResolve(ctx context.Context, id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	if len(sess.State.Games) == 0 {
		return ErrNoGames
	}
	rows := sess.State.Games
	scope := resolution.ScopeFromDefaults(sess.State.Defaults)
	epoch := sess.Epoch

	return s.startJob(ctx, id, JobResolve, func(jobCtx context.Context, logger *slog.Logger) error {
		if _, err := s.store.DispatchAt(id, epoch, wizard.SetResolutionProgress{Progress: resolution.Progress{Total: 2 * len(rows)}}); err != nil {
			return err
		}
		_, err := s.resolver.ResolveAll(jobCtx, rows, scope, func(p resolution.Progress, row games.GameRow) {
			_, derr := s.store.DispatchAt(id, epoch,
				wizard.UpdateTeamResolution{GameID: row.ID, Side: games.SideHome, Resolution: row.HomeTeam},
				wizard.UpdateTeamResolution{GameID: row.ID, Side: games.SideAway, Resolution: row.AwayTeam},
				wizard.SetResolutionProgress{Progress: p},
			)
			if derr != nil {
				logging.Warn(logger, "dropping resolution update", "error", derr)
			}
		})
		return err
	})
}

// StartSubmit submits the selected, ready rows in the background.
func (s *Service) StartSubmit(ctx context.Context, id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	defaults := sess.State.Defaults
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	rows := sess.State.Games
	if len(submission.Eligible(rows)) == 0 {
		return ErrNothingToSubmit
	}
	epoch := sess.Epoch

	return s.startJob(ctx, id, JobSubmit, func(jobCtx context.Context, logger *slog.Logger) error {
		if _, err := s.store.DispatchAt(id, epoch,
			wizard.SetSubmissionState{State: wizard.SubmissionSubmitting, Results: []games.SubmissionResult{}},
			wizard.SetStep{Step: wizard.StepResults},
		); err != nil {
			return err
		}
		results, err := s.submitter.Submit(jobCtx, rows, defaults, func(_ submission.Progress, results []games.SubmissionResult) {
			if _, derr := s.store.DispatchAt(id, epoch, wizard.SetSubmissionState{State: wizard.SubmissionSubmitting, Results: results}); derr != nil {
				logging.Warn(logger, "dropping submission update", "error", derr)
			}
		})
		if err != nil {
			return err
		}
		_, err = s.store.DispatchAt(id, epoch, wizard.SetSubmissionState{State: wizard.SubmissionComplete, Results: results})
		return err
	})
}

// Results returns the rows and submission results of a session.
func (s *Service) Results(id string) ([]games.GameRow, []games.SubmissionResult, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	return sess.State.Games, sess.State.Submission.Results, nil
}

// Wait blocks until the session has no running job or ctx is done.
func (s *Service) Wait(ctx context.Context, id string) error {
	s.mu.Lock()
	j, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PruneIdle removes sessions idle since cutoff and cancels their jobs.
func (s *Service) PruneIdle(cutoff time.Time) []string {
	removed := s.store.PruneIdle(cutoff)
	for _, id := range removed {
		s.cancelJob(id)
	}
	return removed
}

// Shutdown cancels every job and waits for them to exit or ctx to end.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) game(id, gameID string) (store.Session, games.GameRow, error) {
	sess, err := s.Get(id)
	if err != nil {
		return store.Session{}, games.GameRow{}, err
	}
	row, ok := sess.State.Game(gameID)
	if !ok {
		return store.Session{}, games.GameRow{}, ErrGameNotFound
	}
	return sess, row, nil
}

// startJob runs fn in the background unless the session already has a job.
func (s *Service) startJob(ctx context.Context, id, kind string, fn func(context.Context, *slog.Logger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, running := s.jobs[id]; running {
		return ErrJobRunning
	}
	if err := s.base.Err(); err != nil {
		return err
	}

	logger := logging.FromContext(ctx, s.logger)
	if logger != nil {
		logger = logger.With(logging.FieldSessionID, id, logging.FieldOperation, kind)
	}
	jobCtx, cancel := context.WithCancel(logging.WithLogger(s.base, logger))
	j := &job{kind: kind, cancel: cancel, done: make(chan struct{})}
	s.jobs[id] = j
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer close(j.done)
		defer cancel()

		start := time.Now()
		logging.Info(logger, "job started")
		err := fn(jobCtx, logger)
		s.finishJob(id, j)
		s.metrics.RecordJob(kind, time.Since(start), err)

		switch {
		case err == nil:
			logging.Info(logger, "job finished", logging.FieldDurationMS, time.Since(start).Milliseconds())
		case submission.IsCanceled(err), errors.Is(err, store.ErrStaleEpoch), errors.Is(err, store.ErrSessionNotFound):
			logging.Info(logger, "job abandoned", "reason", err.Error())
		default:
			logging.Error(logger, "job failed", err)
		}
	}()
	return nil
}

func (s *Service) finishJob(id string, j *job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jobs[id] == j {
		delete(s.jobs, id)
	}
}

func (s *Service) cancelJob(id string) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	s.mu.Unlock()
	if ok {
		j.cancel()
	}
}
