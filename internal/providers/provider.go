package providers

import (
	"context"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
)

// TeamSearcher looks up candidate teams in the remote directory.
type TeamSearcher interface {
	SearchTeams(ctx context.Context, req SearchRequest) (SearchResult, error)
}

// GameCreator creates games, or matches existing ones, in the remote service.
type GameCreator interface {
	AddGame(ctx context.Context, req AddGameRequest) (AddGameResult, error)
}

// GameFetcher reads the scoring segments recorded for a game.
type GameFetcher interface {
	FetchSegments(ctx context.Context, gameID int) ([]games.Segment, error)
}

// ScoreSubmitter attaches a score to one segment of a game.
type ScoreSubmitter interface {
	AddScore(ctx context.Context, req AddScoreRequest) error
}

// SportsService combines every remote capability the importer needs.
type SportsService interface {
	TeamSearcher
	GameCreator
	GameFetcher
	ScoreSubmitter
}

// SearchRequest is a team directory query.
type SearchRequest struct {
	TeamName string `json:"teamName" validate:"min=3,max=256"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	OrgID    int    `json:"orgId,omitempty"`
	Count    int    `json:"count,omitempty" validate:"gte=0,lte=100"`
}

// SearchResult carries candidates in directory order.
type SearchResult struct {
	Teams []teams.Team `json:"teams"`
	Total int          `json:"total"`
}

// DuplicateCheckLarge is the widest duplicate-detection window the service offers.
const DuplicateCheckLarge = "large"

// AddGameRequest creates one game.
type AddGameRequest struct {
	HomeTeamID           int               `json:"homeTeamId" validate:"required"`
	AwayTeamID           int               `json:"awayTeamId" validate:"required"`
	HomeSquadID          int               `json:"homeSquadId" validate:"required"`
	AwaySquadID          int               `json:"awaySquadId" validate:"required"`
	SportName            games.Sport       `json:"sportName" validate:"required"`
	GameSegmentType      games.SegmentType `json:"gameSegmentType" validate:"required"`
	LocalStartDateTime   string            `json:"localStartDateTime"`
	LocalGameTimezone    string            `json:"localGameTimezone"`
	DuplicateCheckWindow string            `json:"duplicateCheckWindow"`
}

// AddGameResult describes the created or matched game.
type AddGameResult struct {
	GameID      int    `json:"gameId"`
	URL         string `json:"url"`
	IsDuplicate bool   `json:"isDuplicate"`
}

// AddScoreRequest posts a score for one segment of a game.
type AddScoreRequest struct {
	GameID        int `json:"gameId" validate:"required"`
	HomeTeamScore int `json:"homeTeamScore" validate:"gte=0"`
	AwayTeamScore int `json:"awayTeamScore" validate:"gte=0"`
	GameSegmentID int `json:"gameSegmentId" validate:"required"`
}
