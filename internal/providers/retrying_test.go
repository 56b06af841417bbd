package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestRetrying(next SportsService, attempts int) (*retryingService, *[]time.Duration) {
	var delays []time.Duration
	s := NewRetrying(next, "stub", attempts, time.Millisecond, nil).(*retryingService)
	s.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	return s, &delays
}

func TestRetryingRetriesSearchAndSucceeds(t *testing.T) {
	stub := &stubService{failures: 2}
	s, delays := newTestRetrying(stub, 3)

	res, err := s.SearchTeams(context.Background(), SearchRequest{TeamName: "Servite"})
	require.NoError(t, err)
	require.Len(t, res.Teams, 1)
	require.Equal(t, 3, stub.searchCalls)
	require.Len(t, *delays, 2)
}

func TestRetryingStopsAfterMaxAttempts(t *testing.T) {
	stub := &stubService{failures: 5}
	s, _ := newTestRetrying(stub, 2)

	_, err := s.FetchSegments(context.Background(), 42)
	require.Error(t, err)
	require.Equal(t, 2, stub.fetchCalls)
}

func TestRetryingNeverRetriesWrites(t *testing.T) {
	stub := &stubService{failures: 1}
	s, _ := newTestRetrying(stub, 3)

	_, err := s.AddGame(context.Background(), AddGameRequest{})
	require.Error(t, err)
	require.Equal(t, 1, stub.addCalls)

	err = s.AddScore(context.Background(), AddScoreRequest{})
	require.Error(t, err)
	require.Equal(t, 1, stub.scoreCalls)
}

func TestRetryingTreatsRPCAndValidationErrorsAsFinal(t *testing.T) {
	for _, final := range []error{
		&RPCError{Code: -32602, Message: "bad params"},
		ErrInvalidRequest,
	} {
		stub := &stubService{failures: 3, err: final}
		s, delays := newTestRetrying(stub, 3)

		_, err := s.SearchTeams(context.Background(), SearchRequest{TeamName: "Servite"})
		require.ErrorIs(t, err, final)
		require.Equal(t, 1, stub.searchCalls)
		require.Empty(t, *delays)
	}
}

func TestRetryingHonorsRetryAfter(t *testing.T) {
	stub := &stubService{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: 3 * time.Second}}
	s, delays := newTestRetrying(stub, 2)

	_, err := s.SearchTeams(context.Background(), SearchRequest{TeamName: "Servite"})
	require.NoError(t, err)
	require.Equal(t, []time.Duration{3 * time.Second}, *delays)
}

func TestRetryingRespectsContextCancel(t *testing.T) {
	stub := &stubService{failures: 5}
	s, _ := newTestRetrying(stub, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SearchTeams(ctx, SearchRequest{TeamName: "Servite"})
	require.True(t, errors.Is(err, context.Canceled), "expected context canceled, got %v", err)
	require.Equal(t, 1, stub.searchCalls)
}

func TestRetryingWithoutInner(t *testing.T) {
	s := NewRetrying(nil, "none", 0, 0, nil)
	_, err := s.SearchTeams(context.Background(), SearchRequest{})
	require.ErrorIs(t, err, ErrProviderUnavailable)
}
