// Package resolution matches raw team names against remote directory candidates.
package resolution

import (
	"math"
	"strings"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/teams"
	"github.com/preston-bernstein/schedule-import-service/internal/naming"
)

const (
	nameBudget  = 50
	stateBonus  = 30
	cityBonus   = 20
	maxScore    = 100
	autoMatchAt = 70
	minimumGap  = 10
)

// Confidence scores a candidate for a search term, 0 to 100. Name similarity supplies up
// to 50 points; a matching state adds 30 and a matching city adds 20.
func Confidence(searchTerm string, candidate teams.Team, city, state string) int {
	best := naming.BestSimilarity(searchTerm, candidate.TeamName, candidate.MinTeamName, candidate.ShortTeamName)
	score := int(math.Round(float64(best) / 100 * nameBudget))

	if state != "" && strings.EqualFold(state, candidate.State) {
		score += stateBonus
	}
	if city != "" && strings.EqualFold(city, candidate.City) {
		score += cityBonus
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// Classify applies the match policy to scores sorted in descending order.
// A single candidate always matches; with more, the leader must reach 70 and
// beat the runner-up by at least 10.
func Classify(sorted []int) games.TeamStatus {
	switch len(sorted) {
	case 0:
		return games.TeamNotFound
	case 1:
		return games.TeamMatched
	}
	if sorted[0] >= autoMatchAt && sorted[0]-sorted[1] >= minimumGap {
		return games.TeamMatched
	}
	return games.TeamAmbiguous
}
