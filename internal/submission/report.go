package submission

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
)

const (
	reportSheet  = "Results"
	unknownGame  = "Unknown"
	scoreErrNote = "score not attached: "
)

var reportHeader = []string{"Game", "Status", "Game ID", "URL", "Error"}

// reportRows renders one line per result, labelling games by their original team text.
func reportRows(rows []games.GameRow, results []games.SubmissionResult) [][]string {
	byID := make(map[string]games.GameRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	out := make([][]string, 0, len(results))
	for _, res := range results {
		label := unknownGame
		if row, ok := byID[res.GameRowID]; ok {
			label = row.AwayTeam.OriginalText + " @ " + row.HomeTeam.OriginalText
		}
		gameID := ""
		if res.GameID != 0 {
			gameID = strconv.Itoa(res.GameID)
		}
		msg := res.Error
		if msg == "" && res.ScoreError != "" {
			msg = scoreErrNote + res.ScoreError
		}
		out = append(out, []string{label, string(res.Status), gameID, res.GameURL, msg})
	}
	return out
}

// WriteCSV writes the results table with every cell quoted.
func WriteCSV(w io.Writer, rows []games.GameRow, results []games.SubmissionResult) error {
	bw := bufio.NewWriter(w)
	lines := append([][]string{reportHeader}, reportRows(rows, results)...)
	for i, line := range lines {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		for j, cell := range line {
			if j > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quote(cell)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// WriteXLSX writes the results table as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []games.GameRow, results []games.SubmissionResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), reportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	lines := append([][]string{reportHeader}, reportRows(rows, results)...)
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(line))
		for j, v := range line {
			values[j] = v
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
