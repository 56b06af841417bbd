package scorestream

import "testing"

func TestMapAddGameInfersDuplicateFromCounters(t *testing.T) {
	var res gamesAddResult
	res.GameID = 77
	res.Collections.GameCollection.List = []gameRecord{
		{GameID: 12, NumPosts: 9},
		{GameID: 77, NumFinalScores: 1},
	}
	if got := mapAddGame(res); !got.IsDuplicate {
		t.Fatalf("expected duplicate from score counter, got %+v", got)
	}

	res.Collections.GameCollection.List = []gameRecord{{GameID: 12, NumPosts: 9}, {GameID: 77}}
	if got := mapAddGame(res); got.IsDuplicate {
		t.Fatalf("expected fresh game, counters of other games must be ignored")
	}
}

func TestMapSegmentsSkipsOtherGames(t *testing.T) {
	var res gamesGetResult
	res.Collections.GameSegmentCollection.List = []segmentRecord{
		{GameSegmentID: 1, GameID: 5},
		{GameSegmentID: 2, GameID: 6},
		{GameSegmentID: 3},
	}
	got := mapSegments(res, 5)
	if len(got) != 2 || got[0].GameSegmentID != 1 || got[1].GameSegmentID != 3 {
		t.Fatalf("expected segments 1 and 3, got %+v", got)
	}
}

func TestMapSearchDefaultsTotal(t *testing.T) {
	got := mapSearch(teamsSearchResult{})
	if got.Teams == nil || got.Total != 0 {
		t.Fatalf("expected empty non-nil list, got %+v", got)
	}
}
