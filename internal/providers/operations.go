package providers

// Operation names used in logs, metrics and spans.
const (
	OpSearchTeams   = "search_teams"
	OpAddGame       = "add_game"
	OpFetchSegments = "fetch_segments"
	OpAddScore      = "add_score"
)
