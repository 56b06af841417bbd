package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/submission"
	"github.com/preston-bernstein/schedule-import-service/internal/wizard"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sideLabel(res games.TeamResolution) string {
	switch res.Status {
	case games.TeamMatched:
		if res.SelectedTeam == nil {
			return res.OriginalText
		}
		label := res.OriginalText + " -> " + res.SelectedTeam.TeamName
		if res.Confidence != nil {
			label += " (" + strconv.Itoa(*res.Confidence) + "%)"
		}
		return label
	case games.TeamAmbiguous:
		return fmt.Sprintf("%s (%d candidates)", res.OriginalText, len(res.SearchResults))
	case games.TeamNotFound:
		return res.OriginalText + " (not found)"
	default:
		return res.OriginalText
	}
}

func writeRowsTable(w io.Writer, rows []games.GameRow, counts wizard.Counts) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tDATE\tTIME\tAWAY\tHOME\tSTATUS")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.RowIndex+1, row.Date, row.Time, sideLabel(row.AwayTeam), sideLabel(row.HomeTeam), row.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d games: %d ready, %d ambiguous, %d error\n",
		counts.Total, counts.Ready, counts.Ambiguous, counts.Error)
	return err
}

func writeResultsTable(w io.Writer, rows []games.GameRow, results []games.SubmissionResult) error {
	byID := make(map[string]games.GameRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GAME\tSTATUS\tGAME ID\tURL\tERROR")
	for _, res := range results {
		label := "Unknown"
		if row, ok := byID[res.GameRowID]; ok {
			label = row.Label()
		}
		gameID := ""
		if res.GameID != 0 {
			gameID = strconv.Itoa(res.GameID)
		}
		msg := res.Error
		if msg == "" {
			msg = res.ScoreError
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", label, res.Status, gameID, res.GameURL, msg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := submission.Summarize(results)
	_, err := fmt.Fprintf(w, "\n%d created, %d duplicate, %d scored, %d failed\n", s.Created, s.Duplicate, s.Scored, s.Failed)
	return err
}
