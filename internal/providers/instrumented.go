package providers

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
)

const tracerName = "github.com/preston-bernstein/schedule-import-service/internal/providers"

// instrumentedService records attempts, errors and rate limits and wraps each call in a span.
type instrumentedService struct {
	next    SportsService
	name    string
	metrics *metrics.Recorder
	tracer  trace.Tracer
	now     func() time.Time
}

// NewInstrumented wraps next with metrics and tracing. rec may be nil.
func NewInstrumented(next SportsService, name string, rec *metrics.Recorder) SportsService {
	return &instrumentedService{
		next:    next,
		name:    name,
		metrics: rec,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
}

func (s *instrumentedService) SearchTeams(ctx context.Context, req SearchRequest) (SearchResult, error) {
	ctx, done := s.start(ctx, OpSearchTeams, attribute.String("team.query", req.TeamName))
	res, err := s.next.SearchTeams(ctx, req)
	done(err, attribute.Int("team.results", len(res.Teams)))
	return res, err
}

func (s *instrumentedService) AddGame(ctx context.Context, req AddGameRequest) (AddGameResult, error) {
	ctx, done := s.start(ctx, OpAddGame,
		attribute.Int("game.home_team_id", req.HomeTeamID),
		attribute.Int("game.away_team_id", req.AwayTeamID),
	)
	res, err := s.next.AddGame(ctx, req)
	done(err, attribute.Int("game.id", res.GameID), attribute.Bool("game.duplicate", res.IsDuplicate))
	return res, err
}

func (s *instrumentedService) FetchSegments(ctx context.Context, gameID int) ([]games.Segment, error) {
	ctx, done := s.start(ctx, OpFetchSegments, attribute.Int("game.id", gameID))
	list, err := s.next.FetchSegments(ctx, gameID)
	done(err, attribute.Int("game.segments", len(list)))
	return list, err
}

func (s *instrumentedService) AddScore(ctx context.Context, req AddScoreRequest) error {
	ctx, done := s.start(ctx, OpAddScore,
		attribute.Int("game.id", req.GameID),
		attribute.Int("game.segment_id", req.GameSegmentID),
	)
	err := s.next.AddScore(ctx, req)
	done(err)
	return err
}

func (s *instrumentedService) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error, ...attribute.KeyValue)) {
	attrs = append(attrs,
		attribute.String("provider", s.name),
		attribute.String("operation", operation),
	)
	ctx, span := s.tracer.Start(ctx, s.name+"."+operation, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(attrs...))
	started := s.now()

	return ctx, func(err error, extra ...attribute.KeyValue) {
		s.metrics.RecordProviderAttempt(s.name, operation, s.now().Sub(started), err)
		if rl, ok := AsRateLimitError(err); ok {
			s.metrics.RecordRateLimit(s.name, rl.RetryAfter)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(extra...)
		}
		span.End()
	}
}
