package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
)

func TestInstrumentedRecordsAttemptsAndErrors(t *testing.T) {
	rec := metrics.NewRecorder()
	stub := &stubService{failures: 1}
	s := NewInstrumented(stub, "stub", rec)
	ctx := context.Background()

	_, err := s.SearchTeams(ctx, SearchRequest{TeamName: "Servite"})
	require.Error(t, err)
	_, err = s.SearchTeams(ctx, SearchRequest{TeamName: "Servite"})
	require.NoError(t, err)
	_, err = s.AddGame(ctx, AddGameRequest{})
	require.Error(t, err)

	require.Equal(t, 3, rec.ProviderCalls("stub"))
	require.Equal(t, 2, rec.ProviderErrors("stub"))
	require.Equal(t, 0, rec.RateLimitHits("stub"))
}

func TestInstrumentedCountsRateLimits(t *testing.T) {
	rec := metrics.NewRecorder()
	stub := &stubService{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: time.Second}}
	s := NewInstrumented(stub, "stub", rec)

	err := s.AddScore(context.Background(), AddScoreRequest{})
	_, ok := AsRateLimitError(err)
	require.True(t, ok)
	require.Equal(t, 1, rec.RateLimitHits("stub"))
}

func TestInstrumentedToleratesNilRecorder(t *testing.T) {
	s := NewInstrumented(&stubService{}, "stub", nil)
	_, err := s.FetchSegments(context.Background(), 1)
	require.NoError(t, err)
}
