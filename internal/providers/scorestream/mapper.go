package scorestream

import (
	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
)

func mapSearch(res teamsSearchResult) providers.SearchResult {
	list := teams.AttachLogos(
		res.Collections.TeamCollection.List,
		res.Collections.TeamPictureCollection.List,
	)
	if list == nil {
		list = []teams.Team{}
	}
	total := res.Total
	if total == 0 {
		total = len(list)
	}
	return providers.SearchResult{Teams: list, Total: total}
}

func mapAddGame(res gamesAddResult) providers.AddGameResult {
	return providers.AddGameResult{
		GameID:      res.GameID,
		URL:         res.URL,
		IsDuplicate: res.IsDuplicate || hasPriorActivity(res),
	}
}

// hasPriorActivity reports whether the matched game already carried posts or scores,
// which only happens when games.add returned an existing game.
func hasPriorActivity(res gamesAddResult) bool {
	for _, g := range res.Collections.GameCollection.List {
		if g.GameID != 0 && g.GameID != res.GameID {
			continue
		}
		if g.NumPosts > 0 || g.NumUserScores > 0 || g.NumTeamScores > 0 ||
			g.NumGameScores > 0 || g.NumBoxScores > 0 || g.NumFinalScores > 0 {
			return true
		}
	}
	return false
}

func mapSegments(res gamesGetResult, gameID int) []games.Segment {
	list := res.Collections.GameSegmentCollection.List
	out := make([]games.Segment, 0, len(list))
	for _, s := range list {
		if s.GameID != 0 && s.GameID != gameID {
			continue
		}
		out = append(out, games.Segment{
			GameSegmentID: s.GameSegmentID,
			SegmentName:   s.SegmentName,
			HomeTeamScore: s.HomeTeamScore,
			AwayTeamScore: s.AwayTeamScore,
		})
	}
	return out
}
