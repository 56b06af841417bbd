package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
)

const defaultBurst = 1

// rateLimitedService spaces out every remote call with a token bucket.
type rateLimitedService struct {
	next    SportsService
	limiter *rate.Limiter
	name    string
	logger  *slog.Logger
}

// NewRateLimited returns a SportsService allowing perSecond calls per second.
// A non-positive rate disables limiting and returns next unchanged.
func NewRateLimited(next SportsService, name string, perSecond float64, logger *slog.Logger) SportsService {
	if perSecond <= 0 || next == nil {
		return next
	}
	return &rateLimitedService{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), defaultBurst),
		name:    name,
		logger:  logger,
	}
}

func (s *rateLimitedService) wait(ctx context.Context, operation string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, s.logger, slog.LevelWarn, s.name, operation, "rate-limited call canceled", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (s *rateLimitedService) SearchTeams(ctx context.Context, req SearchRequest) (SearchResult, error) {
	if err := s.wait(ctx, OpSearchTeams); err != nil {
		return SearchResult{}, err
	}
	return s.next.SearchTeams(ctx, req)
}

func (s *rateLimitedService) AddGame(ctx context.Context, req AddGameRequest) (AddGameResult, error) {
	if err := s.wait(ctx, OpAddGame); err != nil {
		return AddGameResult{}, err
	}
	return s.next.AddGame(ctx, req)
}

func (s *rateLimitedService) FetchSegments(ctx context.Context, gameID int) ([]games.Segment, error) {
	if err := s.wait(ctx, OpFetchSegments); err != nil {
		return nil, err
	}
	return s.next.FetchSegments(ctx, gameID)
}

func (s *rateLimitedService) AddScore(ctx context.Context, req AddScoreRequest) error {
	if err := s.wait(ctx, OpAddScore); err != nil {
		return err
	}
	return s.next.AddScore(ctx, req)
}
