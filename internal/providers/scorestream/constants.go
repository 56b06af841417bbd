package scorestream

import "time"

const (
	providerName       = "scorestream"
	defaultBaseURL     = "https://scorestream.com/api"
	defaultHTTPTimeout = 15 * time.Second
	defaultCountry     = "US"
	defaultSearchCount = 10
	maxErrorBody       = 512

	methodTeamsSearch = "teams.search"
	methodGamesAdd    = "games.add"
	methodGamesGet    = "games.get"
	methodScoresAdd   = "games.scores.add"

	recommendedForAddingGames = "addingGames"
)
