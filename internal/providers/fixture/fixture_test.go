package fixture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/schedule-import-service/internal/providers"
)

func TestSearchTeamsMatchesSubstringAndFilters(t *testing.T) {
	d := New()
	ctx := context.Background()

	res, err := d.SearchTeams(ctx, providers.SearchRequest{TeamName: "mater dei"})
	require.NoError(t, err)
	require.Len(t, res.Teams, 2)

	res, err = d.SearchTeams(ctx, providers.SearchRequest{TeamName: "Mater Dei", City: "Santa Ana"})
	require.NoError(t, err)
	require.Len(t, res.Teams, 1)
	require.Equal(t, 101, res.Teams[0].TeamID)

	res, err = d.SearchTeams(ctx, providers.SearchRequest{TeamName: "Gorman", State: "CA"})
	require.NoError(t, err)
	require.Empty(t, res.Teams)

	res, err = d.SearchTeams(ctx, providers.SearchRequest{TeamName: "UCLA", OrgID: 1000})
	require.NoError(t, err)
	require.Empty(t, res.Teams)
}

func TestSearchTeamsHonorsCount(t *testing.T) {
	res, err := New().SearchTeams(context.Background(), providers.SearchRequest{TeamName: "High", Count: 3})
	require.NoError(t, err)
	require.Len(t, res.Teams, 3)
	require.Greater(t, res.Total, 3)
}

func TestSearchTeamsValidates(t *testing.T) {
	_, err := New().SearchTeams(context.Background(), providers.SearchRequest{TeamName: "ab"})
	require.ErrorIs(t, err, providers.ErrInvalidRequest)
}

func TestAddGameDetectsDuplicates(t *testing.T) {
	d := New()
	req := providers.AddGameRequest{
		HomeTeamID: 101, AwayTeamID: 103, HomeSquadID: 1010, AwaySquadID: 1010,
		SportName: "football", GameSegmentType: "quarter",
		LocalStartDateTime: "2026-09-05T19:00:00",
	}

	first, err := d.AddGame(context.Background(), req)
	require.NoError(t, err)
	require.False(t, first.IsDuplicate)
	require.Equal(t, firstGameID, first.GameID)

	second, err := d.AddGame(context.Background(), req)
	require.NoError(t, err)
	require.True(t, second.IsDuplicate)
	require.Equal(t, first.GameID, second.GameID)

	req.LocalStartDateTime = "2026-09-12T19:00:00"
	third, err := d.AddGame(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, firstGameID+1, third.GameID)
}

func TestSegmentsAndScores(t *testing.T) {
	d := New()
	ctx := context.Background()

	_, err := d.FetchSegments(ctx, 1)
	_, isRPC := providers.AsRPCError(err)
	require.True(t, isRPC)

	game, err := d.AddGame(ctx, providers.AddGameRequest{
		HomeTeamID: 101, AwayTeamID: 103, HomeSquadID: 1010, AwaySquadID: 1010,
		SportName: "football", GameSegmentType: "quarter",
	})
	require.NoError(t, err)

	list, err := d.FetchSegments(ctx, game.GameID)
	require.NoError(t, err)
	require.Len(t, list, 4)
	for _, seg := range list {
		require.NotEqual(t, finalSegmentID, seg.GameSegmentID)
	}

	score := providers.AddScoreRequest{GameID: game.GameID, HomeTeamScore: 28, AwayTeamScore: 21, GameSegmentID: finalSegmentID}
	require.NoError(t, d.AddScore(ctx, score))
	require.Equal(t, []providers.AddScoreRequest{score}, d.Scores(game.GameID))
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().SearchTeams(ctx, providers.SearchRequest{TeamName: "Servite"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
