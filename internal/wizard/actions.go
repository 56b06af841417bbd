package wizard

import (
	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
	"github.com/preston-bernstein/schedule-import-service/internal/resolution"
	"github.com/preston-bernstein/schedule-import-service/internal/schedule"
)

// Action is a state transition. The set of actions is closed.
type Action interface {
	apply(State) State
}

// SetStep moves to another step. Unknown steps are ignored.
type SetStep struct {
	Step Step
}

// SetFile records a parsed upload.
type SetFile struct {
	Name    string
	Headers []string
	Rows    []map[string]string
}

// DefaultsUpdate changes the non-nil fields of the defaults.
type DefaultsUpdate struct {
	Sport       *games.Sport       `json:"sport,omitempty"`
	SquadID     *int               `json:"squadId,omitempty"`
	SegmentType *games.SegmentType `json:"segmentType,omitempty"`
	Timezone    *string            `json:"timezone,omitempty"`
	State       *string            `json:"state,omitempty"`
	OrgID       *int               `json:"orgId,omitempty"`
}

// SetDefaults merges a defaults update. Changing the sport resets a segment type the new
// sport does not allow.
type SetDefaults struct {
	Update DefaultsUpdate
}

// SetColumnMapping merges the mapped (non-empty) columns.
type SetColumnMapping struct {
	Mapping schedule.Mapping
}

// SetGames replaces the queue.
type SetGames struct {
	Games []games.GameRow
}

// GameUpdate changes the non-nil fields of a row.
type GameUpdate struct {
	Date      *string `json:"date,omitempty"`
	Time      *string `json:"time,omitempty"`
	HomeScore *int    `json:"homeScore,omitempty"`
	AwayScore *int    `json:"awayScore,omitempty"`
	Selected  *bool   `json:"selected,omitempty"`
}

// UpdateGame edits one row.
type UpdateGame struct {
	ID     string
	Update GameUpdate
}

// ToggleGameSelection flips one row's selection.
type ToggleGameSelection struct {
	ID string
}

// SelectAllGames sets the selection of every ready row.
type SelectAllGames struct {
	Selected bool
}

// UpdateTeamResolution replaces one side of a row and recomputes the row status.
type UpdateTeamResolution struct {
	GameID     string
	Side       games.Side
	Resolution games.TeamResolution
}

// SetSearchResults replaces one side's candidates without changing its status.
type SetSearchResults struct {
	GameID  string
	Side    games.Side
	Results []teams.Team
}

// SetResolutionProgress records resolution progress.
type SetResolutionProgress struct {
	Progress resolution.Progress
}

// SetSubmissionState records the submission run state. Nil results keep the current ones.
type SetSubmissionState struct {
	State   SubmissionState
	Results []games.SubmissionResult
}

// Reset returns to a fresh session.
type Reset struct{}

var (
	_ Action = SetStep{}
	_ Action = SetFile{}
	_ Action = SetDefaults{}
	_ Action = SetColumnMapping{}
	_ Action = SetGames{}
	_ Action = UpdateGame{}
	_ Action = ToggleGameSelection{}
	_ Action = SelectAllGames{}
	_ Action = UpdateTeamResolution{}
	_ Action = SetSearchResults{}
	_ Action = SetResolutionProgress{}
	_ Action = SetSubmissionState{}
	_ Action = Reset{}
)
