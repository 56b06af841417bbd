package schedule

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/pdfextract"
)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("row-%d", n)
	}
}

func TestBuildGames(t *testing.T) {
	records := []map[string]string{
		{"Date": "9/5/2026", "Time": "7:00 PM", "Home": "Servite", "Away": "Mater Dei", "City": "Anaheim", "HS": "28", "AS": "21 (OT)"},
		{"Date": "", "Time": "", "Home": "Centennial (Corona, CA)", "Away": "Servite", "HS": "", "AS": "TBD"},
	}
	m := Mapping{Date: "Date", Time: "Time", HomeTeam: "Home", AwayTeam: "Away", HomeCity: "City", HomeScore: "HS", AwayScore: "AS"}

	rows := BuildGames(records, m, sequentialIDs())
	require.Len(t, rows, 2)

	first := rows[0]
	require.Equal(t, "row-1", first.ID)
	require.Equal(t, 0, first.RowIndex)
	require.Equal(t, games.RowAmbiguous, first.Status)
	require.True(t, first.Selected)
	require.Equal(t, games.TeamPending, first.HomeTeam.Status)
	require.Equal(t, "Anaheim", first.HomeTeam.City)
	require.Equal(t, 28, *first.HomeScore)
	require.Equal(t, 21, *first.AwayScore)

	second := rows[1]
	require.Equal(t, "Centennial (Corona, CA)", second.HomeTeam.OriginalText)
	require.Nil(t, second.HomeScore)
	require.Nil(t, second.AwayScore)
	require.Empty(t, second.Date)
}

func TestBuildGamesDefaultsToUUIDs(t *testing.T) {
	rows := BuildGames([]map[string]string{{}, {}}, Mapping{}, nil)
	require.NotEqual(t, rows[0].ID, rows[1].ID)
	_, err := uuid.Parse(rows[0].ID)
	require.NoError(t, err)
}

func TestFromExtracted(t *testing.T) {
	home := 35
	list := []pdfextract.Game{
		{Date: "8/29/2026", Time: "7:00 PM", HomeTeam: " Riverview ", AwayTeam: "Sarasota", HomeCity: "Sarasota", HomeState: "FL", HomeScore: &home, IsCompleted: true},
	}
	rows := FromExtracted(list, sequentialIDs())
	require.Len(t, rows, 1)
	require.Equal(t, "Riverview", rows[0].HomeTeam.OriginalText)
	require.Equal(t, "FL", rows[0].HomeTeam.State)
	require.Equal(t, 35, *rows[0].HomeScore)
	require.Nil(t, rows[0].AwayScore)

	home = 0
	require.Equal(t, 35, *rows[0].HomeScore)
}
