package schedule

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/pdfextract"
)

// IDFunc generates row ids.
type IDFunc func() string

// BuildGames turns mapped records into fresh game rows: both sides pending, the row
// selected and not yet ready.
func BuildGames(records []map[string]string, m Mapping, newID IDFunc) []games.GameRow {
	if newID == nil {
		newID = uuid.NewString
	}
	get := func(record map[string]string, column string) string {
		if column == "" {
			return ""
		}
		return strings.TrimSpace(record[column])
	}

	out := make([]games.GameRow, len(records))
	for i, record := range records {
		out[i] = games.GameRow{
			ID:        newID(),
			RowIndex:  i,
			Date:      get(record, m.Date),
			Time:      get(record, m.Time),
			HomeTeam:  games.NewPendingResolution(get(record, m.HomeTeam), get(record, m.HomeCity), get(record, m.HomeState)),
			AwayTeam:  games.NewPendingResolution(get(record, m.AwayTeam), get(record, m.AwayCity), get(record, m.AwayState)),
			HomeScore: parseScore(get(record, m.HomeScore)),
			AwayScore: parseScore(get(record, m.AwayScore)),
			Status:    games.RowAmbiguous,
			Selected:  true,
		}
	}
	return out
}

// FromExtracted turns games extracted from a PDF into fresh game rows.
func FromExtracted(list []pdfextract.Game, newID IDFunc) []games.GameRow {
	if newID == nil {
		newID = uuid.NewString
	}
	out := make([]games.GameRow, len(list))
	for i, g := range list {
		out[i] = games.GameRow{
			ID:        newID(),
			RowIndex:  i,
			Date:      strings.TrimSpace(g.Date),
			Time:      strings.TrimSpace(g.Time),
			HomeTeam:  games.NewPendingResolution(strings.TrimSpace(g.HomeTeam), g.HomeCity, g.HomeState),
			AwayTeam:  games.NewPendingResolution(strings.TrimSpace(g.AwayTeam), g.AwayCity, g.AwayState),
			HomeScore: copyScore(g.HomeScore),
			AwayScore: copyScore(g.AwayScore),
			Status:    games.RowAmbiguous,
			Selected:  true,
		}
	}
	return out
}

// parseScore reads the leading integer of a cell, so "21 (OT)" is 21. Cells without one
// have no score.
func parseScore(cell string) *int {
	end := 0
	for end < len(cell) && unicode.IsDigit(rune(cell[end])) {
		end++
	}
	if end == 0 {
		return nil
	}
	v, err := strconv.Atoi(cell[:end])
	if err != nil {
		return nil
	}
	return &v
}

func copyScore(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
