package sweeper

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubPruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	removed []string
	calls   atomic.Int32
	notify  chan struct{}
}

func (p *stubPruner) PruneIdle(cutoff time.Time) []string {
	p.mu.Lock()
	p.cutoffs = append(p.cutoffs, cutoff)
	removed := p.removed
	p.removed = nil
	p.mu.Unlock()
	p.calls.Add(1)
	if p.notify != nil {
		select {
		case p.notify <- struct{}{}:
		default:
		}
	}
	return removed
}

func TestSweeperPrunesWithIdleCutoff(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	pruner := &stubPruner{removed: []string{"a", "b"}}

	s := New(pruner, nil, nil, time.Hour, 30*time.Minute)
	s.now = func() time.Time { return now }
	s.sweepOnce()

	if len(pruner.cutoffs) != 1 || !pruner.cutoffs[0].Equal(now.Add(-30*time.Minute)) {
		t.Fatalf("unexpected cutoffs %v", pruner.cutoffs)
	}
	status := s.Status()
	if status.Sweeps != 1 || status.LastRemoved != 2 || status.TotalRemoved != 2 {
		t.Fatalf("unexpected status %+v", status)
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after a sweep")
	}

	s.sweepOnce()
	status = s.Status()
	if status.LastRemoved != 0 || status.TotalRemoved != 2 {
		t.Fatalf("unexpected status after empty sweep %+v", status)
	}
}

func TestSweeperSweepsOnStart(t *testing.T) {
	pruner := &stubPruner{notify: make(chan struct{}, 1)}
	s := New(pruner, nil, nil, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	select {
	case <-pruner.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial sweep")
	}
	_ = s.Stop(context.Background())
}

func TestSweeperStopsOnContextCancel(t *testing.T) {
	pruner := &stubPruner{notify: make(chan struct{}, 1)}
	s := New(pruner, nil, nil, 5*time.Millisecond, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	s.Start(ctx)
	select {
	case <-pruner.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial sweep")
	}

	cancel()
	_ = s.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	callsAfterStop := pruner.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if pruner.calls.Load() != callsAfterStop {
		t.Fatalf("expected no sweeps after stop; before=%d after=%d", callsAfterStop, pruner.calls.Load())
	}
}

func TestSweeperStartAndStopAreIdempotent(t *testing.T) {
	s := New(&stubPruner{}, nil, nil, time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	s.Start(ctx)

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestSweeperDefaults(t *testing.T) {
	s := New(nil, nil, nil, 0, 0)
	if s.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, s.interval)
	}
	if s.idleTTL != defaultIdleTTL {
		t.Fatalf("expected default ttl %s, got %s", defaultIdleTTL, s.idleTTL)
	}
	s.sweepOnce()
	if s.Status().Sweeps != 1 {
		t.Fatalf("expected nil pruner sweep to be counted")
	}
}
