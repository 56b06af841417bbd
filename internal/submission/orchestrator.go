// Package submission creates resolved games in the remote service and attaches final scores.
package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
	"github.com/preston-bernstein/schedule-import-service/internal/segments"
	"github.com/preston-bernstein/schedule-import-service/internal/timeutil"
)

const (
	msgMissingTeam     = "Missing team selection"
	msgMissingDateTime = "Missing date or time"
)

// Remote is the part of the sports service a submission run needs.
type Remote interface {
	providers.GameCreator
	providers.GameFetcher
	providers.ScoreSubmitter
}

// Progress reports how many eligible rows have been submitted.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ProgressFunc observes each finished row. results is the accumulated list so far and must
// not be retained past the call.
type ProgressFunc func(p Progress, results []games.SubmissionResult)

// Orchestrator submits rows strictly one after another.
type Orchestrator struct {
	remote         Remote
	logger         *slog.Logger
	metrics        *metrics.Recorder
	parser         timeutil.Parser
	finalSegmentID int
	emitScored     bool
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithFinalSegmentID sets the id of the remote Final segment.
func WithFinalSegmentID(id int) Option {
	return func(o *Orchestrator) {
		if id > 0 {
			o.finalSegmentID = id
		}
	}
}

// WithScoredStatus reports rows whose score was attached as scored instead of created.
func WithScoredStatus(enabled bool) Option {
	return func(o *Orchestrator) { o.emitScored = enabled }
}

// WithClock sets the clock used to fill in the year of year-less dates.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.parser = timeutil.Parser{Now: now}
		}
	}
}

// NewOrchestrator builds an Orchestrator. logger and rec may be nil.
func NewOrchestrator(remote Remote, logger *slog.Logger, rec *metrics.Recorder, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		remote:         remote,
		logger:         logger,
		metrics:        rec,
		parser:         timeutil.Parser{Now: time.Now},
		finalSegmentID: segments.DefaultFinalSegmentID,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Eligible returns the rows a submission run will send: selected and ready.
func Eligible(rows []games.GameRow) []games.GameRow {
	return games.Filter(rows, games.GameRow.Submittable)
}

// Submit sends every selected, ready row and returns one result per row in order. One row's
// failure never stops the run. A cancelled context stops before the next row and returns the
// results gathered so far along with the context error.
func (o *Orchestrator) Submit(ctx context.Context, rows []games.GameRow, defaults games.Defaults, onProgress ProgressFunc) ([]games.SubmissionResult, error) {
	logger := logging.FromContext(ctx, o.logger)
	eligible := Eligible(rows)
	results := make([]games.SubmissionResult, 0, len(eligible))
	progress := Progress{Total: len(eligible)}

	defaultsErr := defaults.Validate()
	if defaultsErr != nil {
		logging.Warn(logger, "submitting with invalid defaults", "error", defaultsErr)
	}

	for _, row := range eligible {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		var res games.SubmissionResult
		if defaultsErr != nil {
			res = failed(row, defaultsErr.Error())
		} else {
			res = o.submitOne(ctx, row, defaults)
			if err := ctx.Err(); err != nil && res.Status == games.SubmissionFailed {
				return results, err
			}
		}

		results = append(results, res)
		o.metrics.RecordSubmission(string(res.Status))
		progress.Completed++
		if onProgress != nil {
			onProgress(progress, results)
		}
	}

	logging.Info(logger, "submission finished",
		logging.FieldCount, len(results),
	)
	return results, nil
}

func (o *Orchestrator) submitOne(ctx context.Context, row games.GameRow, d games.Defaults) games.SubmissionResult {
	logger := logging.FromContext(ctx, o.logger)
	if row.HomeTeam.SelectedTeam == nil || row.AwayTeam.SelectedTeam == nil {
		return failed(row, msgMissingTeam)
	}
	if row.Date == "" || row.Time == "" {
		return failed(row, msgMissingDateTime)
	}
	start, err := o.parser.Combine(row.Date, row.Time)
	if err != nil {
		return failed(row, err.Error())
	}
	if o.remote == nil {
		return failed(row, providers.ErrProviderUnavailable.Error())
	}

	created, err := o.remote.AddGame(ctx, providers.AddGameRequest{
		HomeTeamID:           row.HomeTeam.SelectedTeam.TeamID,
		AwayTeamID:           row.AwayTeam.SelectedTeam.TeamID,
		HomeSquadID:          d.SquadID,
		AwaySquadID:          d.SquadID,
		SportName:            d.Sport,
		GameSegmentType:      d.SegmentType,
		LocalStartDateTime:   start,
		LocalGameTimezone:    d.Timezone,
		DuplicateCheckWindow: providers.DuplicateCheckLarge,
	})
	if err != nil {
		logging.Warn(logger, "game creation failed",
			logging.FieldGameRowID, row.ID,
			"error", err,
		)
		return failed(row, err.Error())
	}

	res := games.SubmissionResult{
		GameRowID: row.ID,
		Status:    games.SubmissionCreated,
		GameID:    created.GameID,
		GameURL:   created.URL,
	}
	if created.IsDuplicate {
		res.Status = games.SubmissionDuplicate
	}
	logging.Info(logger, "game submitted",
		logging.FieldGameRowID, row.ID,
		logging.FieldGameID, created.GameID,
		logging.FieldStatus, string(res.Status),
	)

	if created.IsDuplicate || !row.HasScores() {
		return res
	}

	source, err := o.attachScore(ctx, created.GameID, *row.HomeScore, *row.AwayScore)
	if err != nil {
		logging.Warn(logger, "score attach failed",
			logging.FieldGameRowID, row.ID,
			logging.FieldGameID, created.GameID,
			"error", err,
		)
		res.ScoreError = err.Error()
		return res
	}
	res.Segment = string(source)
	if o.emitScored {
		res.Status = games.SubmissionScored
	}
	return res
}

// attachScore posts the final score to the game's Final segment.
func (o *Orchestrator) attachScore(ctx context.Context, gameID, home, away int) (segments.Source, error) {
	list, err := o.remote.FetchSegments(ctx, gameID)
	if err != nil {
		return "", fmt.Errorf("fetch segments: %w", err)
	}
	sel := segments.SelectFinal(list, o.finalSegmentID)
	err = o.remote.AddScore(ctx, providers.AddScoreRequest{
		GameID:        gameID,
		HomeTeamScore: home,
		AwayTeamScore: away,
		GameSegmentID: sel.GameSegmentID,
	})
	if err != nil {
		return "", fmt.Errorf("add score to segment %d: %w", sel.GameSegmentID, err)
	}
	return sel.Source, nil
}

func failed(row games.GameRow, msg string) games.SubmissionResult {
	return games.SubmissionResult{GameRowID: row.ID, Status: games.SubmissionFailed, Error: msg}
}

// Summary counts results by status.
type Summary struct {
	Created   int `json:"created"`
	Duplicate int `json:"duplicate"`
	Scored    int `json:"scored"`
	Failed    int `json:"failed"`
}

// Summarize counts results by status.
func Summarize(results []games.SubmissionResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case games.SubmissionCreated:
			s.Created++
		case games.SubmissionDuplicate:
			s.Duplicate++
		case games.SubmissionScored:
			s.Scored++
		case games.SubmissionFailed:
			s.Failed++
		}
	}
	return s
}

// IsCanceled reports whether err came from a cancelled run.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
