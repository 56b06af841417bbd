package wizard

import (
	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
)

// Reduce applies an action and returns the next state. It never modifies s or anything
// reachable from it. A nil action returns s unchanged.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (a SetStep) apply(s State) State {
	if a.Step.Valid() {
		s.Step = a.Step
	}
	return s
}

func (a SetFile) apply(s State) State {
	s.FileName = a.Name
	s.Headers = append([]string{}, a.Headers...)
	s.Rows = append([]map[string]string{}, a.Rows...)
	return s
}

func (a SetDefaults) apply(s State) State {
	d := s.Defaults
	u := a.Update
	if u.Sport != nil {
		d = d.WithSport(*u.Sport)
	}
	if u.SquadID != nil {
		d.SquadID = *u.SquadID
	}
	if u.SegmentType != nil {
		d.SegmentType = *u.SegmentType
	}
	if u.Timezone != nil {
		d.Timezone = *u.Timezone
	}
	if u.State != nil {
		d.State = *u.State
	}
	if u.OrgID != nil {
		d.OrgID = *u.OrgID
	}
	s.Defaults = d
	return s
}

func (a SetColumnMapping) apply(s State) State {
	s.Mapping = s.Mapping.Merge(a.Mapping)
	return s
}

func (a SetGames) apply(s State) State {
	s.Games = append([]games.GameRow{}, a.Games...)
	return s
}

func (a UpdateGame) apply(s State) State {
	u := a.Update
	return updateRow(s, a.ID, func(g games.GameRow) games.GameRow {
		if u.Date != nil {
			g.Date = *u.Date
		}
		if u.Time != nil {
			g.Time = *u.Time
		}
		if u.HomeScore != nil {
			v := *u.HomeScore
			g.HomeScore = &v
		}
		if u.AwayScore != nil {
			v := *u.AwayScore
			g.AwayScore = &v
		}
		if u.Selected != nil {
			g.Selected = *u.Selected
		}
		return g
	})
}

func (a ToggleGameSelection) apply(s State) State {
	return updateRow(s, a.ID, func(g games.GameRow) games.GameRow {
		g.Selected = !g.Selected
		return g
	})
}

func (a SelectAllGames) apply(s State) State {
	out := make([]games.GameRow, len(s.Games))
	for i, g := range s.Games {
		if g.Status == games.RowReady {
			g.Selected = a.Selected
		}
		out[i] = g
	}
	s.Games = out
	return s
}

func (a UpdateTeamResolution) apply(s State) State {
	if !a.Side.Valid() {
		return s
	}
	return updateRow(s, a.GameID, func(g games.GameRow) games.GameRow {
		return g.WithResolution(a.Side, a.Resolution)
	})
}

func (a SetSearchResults) apply(s State) State {
	if !a.Side.Valid() {
		return s
	}
	return updateRow(s, a.GameID, func(g games.GameRow) games.GameRow {
		res := g.Resolution(a.Side)
		res.SearchResults = append([]teams.Team{}, a.Results...)
		return g.WithResolution(a.Side, res)
	})
}

func (a SetResolutionProgress) apply(s State) State {
	s.Progress = a.Progress
	return s
}

func (a SetSubmissionState) apply(s State) State {
	results := s.Submission.Results
	if a.Results != nil {
		results = append([]games.SubmissionResult{}, a.Results...)
	}
	s.Submission = Submission{State: a.State, Results: results}
	return s
}

func (Reset) apply(State) State {
	return Initial()
}

// updateRow copies the queue and replaces the row with the given id.
func updateRow(s State, id string, fn func(games.GameRow) games.GameRow) State {
	out := make([]games.GameRow, len(s.Games))
	for i, g := range s.Games {
		if g.ID == id {
			g = fn(g)
		}
		out[i] = g
	}
	s.Games = out
	return s
}
