package games

import "github.com/preston-bernstein/schedule-import-service/internal/domain/teams"

// TeamStatus tracks where one side of a game is in resolution.
type TeamStatus string

const (
	TeamPending   TeamStatus = "pending"
	TeamMatched   TeamStatus = "matched"
	TeamAmbiguous TeamStatus = "ambiguous"
	TeamNotFound  TeamStatus = "not_found"
)

// Side names the home or away half of a game row.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Valid reports whether s is home or away.
func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// RowStatus is derived from both team resolutions of a row.
type RowStatus string

const (
	RowReady     RowStatus = "ready"
	RowAmbiguous RowStatus = "ambiguous"
	RowError     RowStatus = "error"
)

// TeamResolution is the per-side resolution state.
type TeamResolution struct {
	OriginalText  string       `json:"originalText"`
	Status        TeamStatus   `json:"status"`
	SearchResults []teams.Team `json:"searchResults,omitempty"`
	SelectedTeam  *teams.Team  `json:"selectedTeam,omitempty"`
	Confidence    *int         `json:"confidence,omitempty"`
	City          string       `json:"city,omitempty"`
	State         string       `json:"state,omitempty"`
}

// NewPendingResolution starts a side in pending with its raw text and location hints.
func NewPendingResolution(text, city, state string) TeamResolution {
	return TeamResolution{
		OriginalText: text,
		Status:       TeamPending,
		City:         city,
		State:        state,
	}
}

// Candidate returns the search result with the given id.
func (r TeamResolution) Candidate(teamID int) (teams.Team, bool) {
	for _, team := range r.SearchResults {
		if team.TeamID == teamID {
			return team, true
		}
	}
	return teams.Team{}, false
}

// DeriveStatus combines both sides into the row status.
func DeriveStatus(home, away TeamResolution) RowStatus {
	switch {
	case home.Status == TeamMatched && away.Status == TeamMatched:
		return RowReady
	case home.Status == TeamNotFound || away.Status == TeamNotFound:
		return RowError
	default:
		return RowAmbiguous
	}
}

// GameRow is one schedule entry in an import batch.
type GameRow struct {
	ID        string         `json:"id"`
	RowIndex  int            `json:"rowIndex"`
	Date      string         `json:"date,omitempty"`
	Time      string         `json:"time,omitempty"`
	HomeTeam  TeamResolution `json:"homeTeam"`
	AwayTeam  TeamResolution `json:"awayTeam"`
	HomeScore *int           `json:"homeScore,omitempty"`
	AwayScore *int           `json:"awayScore,omitempty"`
	Status    RowStatus      `json:"status"`
	Selected  bool           `json:"selected"`
}

// Resolution returns the resolution for one side.
func (g GameRow) Resolution(side Side) TeamResolution {
	if side == SideAway {
		return g.AwayTeam
	}
	return g.HomeTeam
}

// WithResolution returns a copy of the row with one side replaced and the status recomputed.
func (g GameRow) WithResolution(side Side, res TeamResolution) GameRow {
	if side == SideAway {
		g.AwayTeam = res
	} else {
		g.HomeTeam = res
	}
	g.Status = DeriveStatus(g.HomeTeam, g.AwayTeam)
	return g
}

// HasScores reports whether both a home and away score are present.
func (g GameRow) HasScores() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// Submittable reports whether the row is picked for submission.
func (g GameRow) Submittable() bool {
	return g.Selected && g.Status == RowReady
}

// Label renders the row as "away @ home" for reports.
func (g GameRow) Label() string {
	return teamLabel(g.AwayTeam) + " @ " + teamLabel(g.HomeTeam)
}

func teamLabel(res TeamResolution) string {
	if res.SelectedTeam != nil && res.SelectedTeam.TeamName != "" {
		return res.SelectedTeam.TeamName
	}
	return res.OriginalText
}

// Segment is a scoring sub-unit of a game owned by the remote service.
type Segment struct {
	GameSegmentID int    `json:"gameSegmentId"`
	SegmentName   string `json:"segmentName,omitempty"`
	HomeTeamScore *int   `json:"homeTeamScore,omitempty"`
	AwayTeamScore *int   `json:"awayTeamScore,omitempty"`
}

// SubmissionStatus is the per-game outcome of a submission run.
type SubmissionStatus string

const (
	SubmissionCreated   SubmissionStatus = "created"
	SubmissionDuplicate SubmissionStatus = "duplicate"
	SubmissionScored    SubmissionStatus = "scored"
	SubmissionFailed    SubmissionStatus = "failed"
)

// SubmissionResult records what happened to one submitted row.
type SubmissionResult struct {
	GameRowID  string           `json:"gameRowId"`
	Status     SubmissionStatus `json:"status"`
	GameID     int              `json:"gameId,omitempty"`
	GameURL    string           `json:"gameUrl,omitempty"`
	Error      string           `json:"error,omitempty"`
	ScoreError string           `json:"scoreError,omitempty"`
	Segment    string           `json:"segmentSource,omitempty"`
}

// Filter returns the rows that satisfy keep, preserving order.
func Filter(rows []GameRow, keep func(GameRow) bool) []GameRow {
	out := make([]GameRow, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}
