package scorestream

import (
	"encoding/json"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
)

type rpcRequest struct {
	JSONRPC string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params"`
	ID      int64          `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type teamsSearchResult struct {
	TeamIDs     []int `json:"teamIds"`
	Total       int   `json:"total"`
	Collections struct {
		TeamCollection struct {
			List []teams.Team `json:"list"`
		} `json:"teamCollection"`
		TeamPictureCollection struct {
			List []teams.Picture `json:"list"`
		} `json:"teamPictureCollection"`
	} `json:"collections"`
}

type gamesAddResult struct {
	GameID      int    `json:"gameId"`
	URL         string `json:"url"`
	IsDuplicate bool   `json:"isDuplicate"`
	Collections struct {
		GameCollection struct {
			List []gameRecord `json:"list"`
		} `json:"gameCollection"`
	} `json:"collections"`
}

// gameRecord holds the activity counters of a created or matched game.
type gameRecord struct {
	GameID         int `json:"gameId"`
	NumPosts       int `json:"numPosts"`
	NumUserScores  int `json:"numUserScores"`
	NumTeamScores  int `json:"numTeamScores"`
	NumGameScores  int `json:"numGameScores"`
	NumBoxScores   int `json:"numBoxScores"`
	NumFinalScores int `json:"numFinalScores"`
}

type gamesGetResult struct {
	Collections struct {
		GameSegmentCollection struct {
			List []segmentRecord `json:"list"`
		} `json:"gameSegmentCollection"`
	} `json:"collections"`
}

type segmentRecord struct {
	GameSegmentID int    `json:"gameSegmentId"`
	GameID        int    `json:"gameId"`
	SegmentName   string `json:"segmentName"`
	HomeTeamScore *int   `json:"homeTeamScore"`
	AwayTeamScore *int   `json:"awayTeamScore"`
}
