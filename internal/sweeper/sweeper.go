// Package sweeper periodically removes idle import sessions.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
)

const (
	defaultInterval = time.Minute
	defaultIdleTTL  = 2 * time.Hour
	jobKind         = "sweep"
)

// Pruner removes sessions idle since cutoff and returns their ids.
type Pruner interface {
	PruneIdle(cutoff time.Time) []string
}

// Sweeper prunes idle sessions on an interval.
type Sweeper struct {
	pruner   Pruner
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	idleTTL  time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the sweeper's recent activity.
type Status struct {
	Sweeps       int       `json:"sweeps"`
	LastSweep    time.Time `json:"lastSweep"`
	LastRemoved  int       `json:"lastRemoved"`
	TotalRemoved int       `json:"totalRemoved"`
}

// IsReady reports whether at least one sweep has run.
func (s Status) IsReady() bool {
	return !s.LastSweep.IsZero()
}

// New constructs a Sweeper. Non-positive durations fall back to defaults.
func New(pruner Pruner, logger *slog.Logger, recorder *metrics.Recorder, interval, idleTTL time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return &Sweeper{
		pruner:   pruner,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		idleTTL:  idleTTL,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start sweeps once immediately and then on every tick until ctx is done or Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.ticker = time.NewTicker(s.interval)

	go func() {
		logging.Info(s.logger, "session sweeper started", logging.FieldDurationMS, s.interval.Milliseconds())
		s.sweepOnce()

		for {
			select {
			case <-ctx.Done():
				s.stopTicker()
				logging.Info(s.logger, "session sweeper stopped")
				return
			case <-s.done:
				s.stopTicker()
				logging.Info(s.logger, "session sweeper stopped")
				return
			case <-s.ticker.C:
				s.sweepOnce()
			}
		}
	}()
}

// Stop halts the sweep loop. It is safe to call more than once.
func (s *Sweeper) Stop(ctx context.Context) error {
	_ = ctx
	s.stopOnce.Do(func() {
		close(s.done)
		s.stopTicker()
	})
	return nil
}

func (s *Sweeper) sweepOnce() {
	start := s.now()
	var removed []string
	if s.pruner != nil {
		removed = s.pruner.PruneIdle(start.Add(-s.idleTTL))
	}
	s.metrics.RecordJob(jobKind, time.Since(start), nil)

	s.statusMu.Lock()
	s.status.Sweeps++
	s.status.LastSweep = start
	s.status.LastRemoved = len(removed)
	s.status.TotalRemoved += len(removed)
	s.statusMu.Unlock()

	if len(removed) > 0 {
		logging.Info(s.logger, "pruned idle sessions", logging.FieldCount, len(removed))
	}
}

func (s *Sweeper) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
}

// Status returns a snapshot of the sweeper's recent activity.
func (s *Sweeper) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
