package resolution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
	"github.com/preston-bernstein/schedule-import-service/internal/naming"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
)

const (
	defaultSearchCount = 10
	minQueryLength     = 3
)

var (
	// ErrQueryTooShort is returned by ManualSearch for queries under three characters.
	ErrQueryTooShort = errors.New("search query must be at least 3 characters")
	// ErrUnknownCandidate is returned when a selection is not among the side's search results.
	ErrUnknownCandidate = errors.New("team is not among the search results")
)

// Scope carries the batch-level settings that shape every search.
type Scope struct {
	DefaultState string
	OrgID        int
}

// ScopeFromDefaults derives the search scope from import defaults.
func ScopeFromDefaults(d games.Defaults) Scope {
	return Scope{DefaultState: d.State, OrgID: d.OrgID}
}

// Resolver resolves team sides against a remote TeamSearcher.
type Resolver struct {
	searcher    providers.TeamSearcher
	logger      *slog.Logger
	metrics     *metrics.Recorder
	searchCount int
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithSearchCount sets how many candidates each search requests.
func WithSearchCount(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.searchCount = n
		}
	}
}

// NewResolver builds a Resolver. logger and rec may be nil.
func NewResolver(searcher providers.TeamSearcher, logger *slog.Logger, rec *metrics.Recorder, opts ...Option) *Resolver {
	r := &Resolver{
		searcher:    searcher,
		logger:      logger,
		metrics:     rec,
		searchCount: defaultSearchCount,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve searches for one side and classifies the result. Remote failures degrade to
// not_found with no candidates; Resolve itself never fails.
func (r *Resolver) Resolve(ctx context.Context, side games.TeamResolution, scope Scope) games.TeamResolution {
	logger := logging.FromContext(ctx, r.logger)

	parsed := naming.ParseTeamName(side.OriginalText)
	city := firstNonEmpty(parsed.City, side.City)
	state := firstNonEmpty(parsed.State, side.State, scope.DefaultState)

	query := naming.CoreName(parsed.TeamName)
	if utf8.RuneCountInString(query) < minQueryLength {
		query = naming.Normalize(parsed.TeamName)
	}

	out := games.TeamResolution{
		OriginalText: side.OriginalText,
		City:         city,
		State:        state,
	}

	candidates, err := r.searchLadder(ctx, query, city, state, scope.OrgID)
	if err != nil {
		logging.Warn(logger, "team search failed",
			logging.FieldQuery, query,
			"error", err,
		)
		out.Status = games.TeamNotFound
		out.SearchResults = []teams.Team{}
		r.metrics.RecordResolution(string(out.Status))
		return out
	}

	candidates = filterByOrg(candidates, scope.OrgID)
	ranked, scores := rank(parsed.TeamName, candidates, city, state)

	out.Status = Classify(scores)
	out.SearchResults = ranked
	if len(scores) > 0 {
		top := scores[0]
		out.Confidence = &top
	}
	if out.Status == games.TeamMatched {
		selected := ranked[0]
		out.SelectedTeam = &selected
	}

	logging.Info(logger, "team resolved",
		logging.FieldQuery, query,
		logging.FieldStatus, string(out.Status),
		logging.FieldCount, len(ranked),
	)
	r.metrics.RecordResolution(string(out.Status))
	return out
}

// searchLadder widens the query until something comes back: drop the city, then the
// organization filter, then fall back to the first word of the query.
func (r *Resolver) searchLadder(ctx context.Context, query, city, state string, orgID int) ([]teams.Team, error) {
	req := providers.SearchRequest{
		TeamName: query,
		City:     city,
		State:    state,
		OrgID:    orgID,
		Count:    r.searchCount,
	}

	found, err := r.search(ctx, req)
	if err != nil || len(found) > 0 {
		return found, err
	}

	if req.City != "" {
		req.City = ""
		if found, err = r.search(ctx, req); err != nil || len(found) > 0 {
			return found, err
		}
	}

	if req.OrgID != 0 {
		req.OrgID = 0
		if found, err = r.search(ctx, req); err != nil || len(found) > 0 {
			return found, err
		}
	}

	if fields := strings.Fields(query); len(fields) > 1 && utf8.RuneCountInString(fields[0]) >= minQueryLength {
		req.TeamName = fields[0]
		return r.search(ctx, req)
	}
	return found, nil
}

func (r *Resolver) search(ctx context.Context, req providers.SearchRequest) ([]teams.Team, error) {
	if r.searcher == nil {
		return nil, providers.ErrProviderUnavailable
	}
	res, err := r.searcher.SearchTeams(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", req.TeamName, err)
	}
	return res.Teams, nil
}

// ManualSearch runs a human-directed query for one side. The side's candidates are replaced
// and its status is left alone until a team is selected.
func (r *Resolver) ManualSearch(ctx context.Context, side games.TeamResolution, query string, scope Scope) (games.TeamResolution, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return side, ErrQueryTooShort
	}

	state := firstNonEmpty(side.State, scope.DefaultState)
	req := providers.SearchRequest{
		TeamName: query,
		State:    state,
		OrgID:    scope.OrgID,
		Count:    r.searchCount,
	}
	found, err := r.search(ctx, req)
	if err == nil && len(found) == 0 && req.OrgID != 0 {
		req.OrgID = 0
		found, err = r.search(ctx, req)
	}
	if err != nil {
		return side, err
	}

	ranked, _ := rank(query, found, side.City, state)
	side.SearchResults = ranked
	logging.Info(logging.FromContext(ctx, r.logger), "manual team search",
		logging.FieldQuery, query,
		logging.FieldCount, len(ranked),
	)
	return side, nil
}

// SelectTeam marks a side matched with one of its own search results.
func SelectTeam(side games.TeamResolution, teamID int) (games.TeamResolution, error) {
	team, ok := side.Candidate(teamID)
	if !ok {
		return side, fmt.Errorf("%w: %d", ErrUnknownCandidate, teamID)
	}
	parsed := naming.ParseTeamName(side.OriginalText)
	score := Confidence(parsed.TeamName, team, side.City, side.State)

	side.Status = games.TeamMatched
	side.SelectedTeam = &team
	side.Confidence = &score
	return side, nil
}

// Progress reports how many side searches have finished out of the total.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Percent returns completion as 0-100.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 100
	}
	return p.Completed * 100 / p.Total
}

// ProgressFunc observes each resolved side along with its updated row.
type ProgressFunc func(p Progress, row games.GameRow)

// ResolveAll resolves every row sequentially, home side then away side. It returns new rows
// and leaves the input untouched. A cancelled context stops the loop before the next search.
func (r *Resolver) ResolveAll(ctx context.Context, rows []games.GameRow, scope Scope, onProgress ProgressFunc) ([]games.GameRow, error) {
	out := make([]games.GameRow, len(rows))
	copy(out, rows)

	progress := Progress{Total: 2 * len(rows)}
	for i := range out {
		for _, side := range []games.Side{games.SideHome, games.SideAway} {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			resolved := r.Resolve(ctx, out[i].Resolution(side), scope)
			out[i] = out[i].WithResolution(side, resolved)

			progress.Completed++
			if onProgress != nil {
				onProgress(progress, out[i])
			}
		}
	}
	return out, nil
}

func filterByOrg(candidates []teams.Team, orgID int) []teams.Team {
	if orgID == 0 || len(candidates) == 0 {
		return candidates
	}
	filtered := make([]teams.Team, 0, len(candidates))
	for _, team := range candidates {
		if team.HasOrg(orgID) {
			filtered = append(filtered, team)
		}
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}

// rank scores candidates and returns them with their scores, both sorted best first.
// Equal scores keep directory order.
func rank(term string, candidates []teams.Team, city, state string) ([]teams.Team, []int) {
	type scored struct {
		team  teams.Team
		score int
	}
	list := make([]scored, len(candidates))
	for i, team := range candidates {
		list[i] = scored{team: team, score: Confidence(term, team, city, state)}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })

	ranked := make([]teams.Team, len(list))
	scores := make([]int, len(list))
	for i, s := range list {
		ranked[i] = s.team
		scores[i] = s.score
	}
	return ranked, scores
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
