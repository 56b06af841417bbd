package testutil

import (
	"context"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
)

// ErrService fails every call with Err.
type ErrService struct {
	Err error
}

func (s ErrService) SearchTeams(context.Context, providers.SearchRequest) (providers.SearchResult, error) {
	return providers.SearchResult{}, s.Err
}

func (s ErrService) AddGame(context.Context, providers.AddGameRequest) (providers.AddGameResult, error) {
	return providers.AddGameResult{}, s.Err
}

func (s ErrService) FetchSegments(context.Context, int) ([]games.Segment, error) {
	return nil, s.Err
}

func (s ErrService) AddScore(context.Context, providers.AddScoreRequest) error {
	return s.Err
}

// UnavailableService returns ErrProviderUnavailable from every call.
func UnavailableService() ErrService {
	return ErrService{Err: providers.ErrProviderUnavailable}
}

// CountingService delegates to Next and counts searches, closing Notify on the first one.
type CountingService struct {
	providers.SportsService
	Searches int
	Notify   chan struct{}
}

func (s *CountingService) SearchTeams(ctx context.Context, req providers.SearchRequest) (providers.SearchResult, error) {
	s.Searches++
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	return s.SportsService.SearchTeams(ctx, req)
}
