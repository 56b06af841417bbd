// Package wizard holds the import session state and the pure reducer that advances it.
package wizard

import (
	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/resolution"
	"github.com/preston-bernstein/schedule-import-service/internal/schedule"
)

// Step is a stage of the import flow.
type Step int

const (
	StepUpload Step = iota + 1
	StepDefaults
	StepMapping
	StepQueue
	StepResults
)

// Valid reports whether s is a known step.
func (s Step) Valid() bool { return s >= StepUpload && s <= StepResults }

// SubmissionState tracks a submission run.
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionComplete   SubmissionState = "complete"
)

// Submission is the state of the current or last submission run.
type Submission struct {
	State   SubmissionState          `json:"state"`
	Results []games.SubmissionResult `json:"results"`
}

// State is one import session. Values are treated as immutable: Reduce returns a new State.
type State struct {
	Step       Step                `json:"step"`
	FileName   string              `json:"fileName,omitempty"`
	Headers    []string            `json:"headers"`
	Rows       []map[string]string `json:"-"`
	Defaults   games.Defaults      `json:"defaults"`
	Mapping    schedule.Mapping    `json:"columnMapping"`
	Games      []games.GameRow     `json:"games"`
	Submission Submission          `json:"submission"`
	Progress   resolution.Progress `json:"progress"`
}

// Initial returns the state of a fresh session.
func Initial() State {
	return State{
		Step:       StepUpload,
		Headers:    []string{},
		Defaults:   games.InitialDefaults(),
		Games:      []games.GameRow{},
		Submission: Submission{State: SubmissionIdle, Results: []games.SubmissionResult{}},
	}
}

// Game returns the row with the given id.
func (s State) Game(id string) (games.GameRow, bool) {
	for _, g := range s.Games {
		if g.ID == id {
			return g, true
		}
	}
	return games.GameRow{}, false
}

// Counts summarizes the queue.
type Counts struct {
	Total     int `json:"total"`
	Ready     int `json:"ready"`
	Ambiguous int `json:"ambiguous"`
	Error     int `json:"error"`
	Selected  int `json:"selected"`
}

// Counts tallies rows by status. Selected counts rows that would be submitted.
func (s State) Counts() Counts {
	c := Counts{Total: len(s.Games)}
	for _, g := range s.Games {
		switch g.Status {
		case games.RowReady:
			c.Ready++
		case games.RowAmbiguous:
			c.Ambiguous++
		case games.RowError:
			c.Error++
		}
		if g.Submittable() {
			c.Selected++
		}
	}
	return c
}
