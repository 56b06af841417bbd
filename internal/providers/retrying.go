package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingService retries the read calls of a SportsService. Game creation and score
// posting are never retried because a repeated write can create a second game.
type retryingService struct {
	next        SportsService
	name        string
	logger      *slog.Logger
	maxAttempts int
	initial     time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRetrying wraps next with exponential backoff on SearchTeams and FetchSegments.
// If maxAttempts/initial are <= 0, defaults are used.
func NewRetrying(next SportsService, name string, maxAttempts int, initial time.Duration, logger *slog.Logger) SportsService {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingService{
		next:        next,
		name:        name,
		logger:      logger,
		maxAttempts: maxAttempts,
		initial:     initial,
		sleep:       sleepContext,
	}
}

func (s *retryingService) SearchTeams(ctx context.Context, req SearchRequest) (SearchResult, error) {
	var out SearchResult
	err := s.retry(ctx, OpSearchTeams, func() error {
		res, err := s.next.SearchTeams(ctx, req)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

func (s *retryingService) FetchSegments(ctx context.Context, gameID int) ([]games.Segment, error) {
	var out []games.Segment
	err := s.retry(ctx, OpFetchSegments, func() error {
		list, err := s.next.FetchSegments(ctx, gameID)
		if err != nil {
			return err
		}
		out = list
		return nil
	})
	return out, err
}

func (s *retryingService) AddGame(ctx context.Context, req AddGameRequest) (AddGameResult, error) {
	return s.next.AddGame(ctx, req)
}

func (s *retryingService) AddScore(ctx context.Context, req AddScoreRequest) error {
	return s.next.AddScore(ctx, req)
}

func (s *retryingService) retry(ctx context.Context, operation string, op func() error) error {
	if s.next == nil {
		return ErrProviderUnavailable
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initial
	b.MaxInterval = maxBackoff
	b.MaxElapsedTime = 0
	b.Reset()

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) || attempt == s.maxAttempts {
			break
		}

		delay := b.NextBackOff()
		if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > delay {
			delay = rl.RetryAfter
		}
		logWithProvider(ctx, s.logger, slog.LevelWarn, s.name, operation, "provider call retry",
			"attempt", attempt,
			"max_attempts", s.maxAttempts,
			"delay", delay,
			"error", err,
		)
		if err := s.sleep(ctx, delay); err != nil {
			return err
		}
	}

	logWithProvider(ctx, s.logger, slog.LevelWarn, s.name, operation, "provider call failed", "error", lastErr)
	return lastErr
}

// retryable reports whether another attempt could succeed. Local validation failures,
// JSON-RPC errors and cancellation are final.
func retryable(err error) bool {
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if _, ok := AsRPCError(err); ok {
		return false
	}
	return true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
