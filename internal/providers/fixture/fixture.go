// Package fixture provides an in-memory sports service for local runs and tests.
package fixture

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
)

const (
	providerName      = "fixture"
	firstGameID       = 5001
	finalSegmentID    = 19999
	gameURLTemplate   = "https://fixture.local/game/%d"
	quarterSegmentIDs = 10010
)

type gameKey struct {
	home, away int
	start      string
}

// Directory is a deterministic team directory and game store.
type Directory struct {
	mu     sync.Mutex
	teams  []teams.Team
	games  map[gameKey]int
	scores map[int][]providers.AddScoreRequest
	nextID int
}

var _ providers.SportsService = (*Directory)(nil)

// New creates a directory seeded with a fixed set of teams.
func New() *Directory {
	return NewWithTeams(DefaultTeams())
}

// NewWithTeams creates a directory over the given teams.
func NewWithTeams(list []teams.Team) *Directory {
	return &Directory{
		teams:  append([]teams.Team(nil), list...),
		games:  make(map[gameKey]int),
		scores: make(map[int][]providers.AddScoreRequest),
		nextID: firstGameID,
	}
}

// Name identifies the provider in logs and metrics.
func (d *Directory) Name() string { return providerName }

// SearchTeams matches the query as a case-insensitive substring of any team name,
// narrowed by city, state and organization when given.
func (d *Directory) SearchTeams(ctx context.Context, req providers.SearchRequest) (providers.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return providers.SearchResult{}, err
	}
	if err := providers.ValidateRequest(req); err != nil {
		return providers.SearchResult{}, err
	}

	query := strings.ToLower(req.TeamName)
	found := make([]teams.Team, 0)
	for _, team := range d.teams {
		if !nameContains(team, query) {
			continue
		}
		if req.City != "" && !strings.EqualFold(team.City, req.City) {
			continue
		}
		if req.State != "" && !strings.EqualFold(team.State, req.State) {
			continue
		}
		if req.OrgID != 0 && !team.HasOrg(req.OrgID) {
			continue
		}
		found = append(found, team)
	}
	total := len(found)
	if req.Count > 0 && len(found) > req.Count {
		found = found[:req.Count]
	}
	return providers.SearchResult{Teams: found, Total: total}, nil
}

// AddGame stores a game. Repeating the same teams and start time returns the stored game
// flagged as a duplicate.
func (d *Directory) AddGame(ctx context.Context, req providers.AddGameRequest) (providers.AddGameResult, error) {
	if err := ctx.Err(); err != nil {
		return providers.AddGameResult{}, err
	}
	if err := providers.ValidateRequest(req); err != nil {
		return providers.AddGameResult{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := gameKey{home: req.HomeTeamID, away: req.AwayTeamID, start: req.LocalStartDateTime}
	if id, ok := d.games[key]; ok {
		return providers.AddGameResult{GameID: id, URL: fmt.Sprintf(gameURLTemplate, id), IsDuplicate: true}, nil
	}
	id := d.nextID
	d.nextID++
	d.games[key] = id
	return providers.AddGameResult{GameID: id, URL: fmt.Sprintf(gameURLTemplate, id)}, nil
}

// FetchSegments returns four quarters and no Final row, which mirrors what the live
// service usually reports for a fresh game.
func (d *Directory) FetchSegments(ctx context.Context, gameID int) ([]games.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !d.known(gameID) {
		return nil, &providers.RPCError{Method: "games.get", Code: 404, Message: fmt.Sprintf("game %d not found", gameID)}
	}
	list := make([]games.Segment, 0, 4)
	for q := 0; q < 4; q++ {
		list = append(list, games.Segment{
			GameSegmentID: quarterSegmentIDs + q*10,
			SegmentName:   fmt.Sprintf("Q%d", q+1),
		})
	}
	return list, nil
}

// AddScore records a score against a known game.
func (d *Directory) AddScore(ctx context.Context, req providers.AddScoreRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := providers.ValidateRequest(req); err != nil {
		return err
	}
	if !d.known(req.GameID) {
		return &providers.RPCError{Method: "games.scores.add", Code: 404, Message: fmt.Sprintf("game %d not found", req.GameID)}
	}
	d.mu.Lock()
	d.scores[req.GameID] = append(d.scores[req.GameID], req)
	d.mu.Unlock()
	return nil
}

// Scores returns the scores posted for a game.
func (d *Directory) Scores(gameID int) []providers.AddScoreRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]providers.AddScoreRequest(nil), d.scores[gameID]...)
}

func (d *Directory) known(gameID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range d.games {
		if id == gameID {
			return true
		}
	}
	return false
}

func nameContains(team teams.Team, query string) bool {
	for _, name := range []string{team.TeamName, team.MinTeamName, team.ShortTeamName} {
		if name != "" && strings.Contains(strings.ToLower(name), query) {
			return true
		}
	}
	return false
}
