package schedule

import (
	"errors"
	"strings"
)

// ErrIncompleteMapping is returned when a required column is not mapped.
var ErrIncompleteMapping = errors.New("column mapping incomplete")

// Mapping names the header used for each game field. Empty means unmapped.
type Mapping struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeCity  string `json:"homeCity,omitempty"`
	HomeState string `json:"homeState,omitempty"`
	AwayCity  string `json:"awayCity,omitempty"`
	AwayState string `json:"awayState,omitempty"`
	HomeScore string `json:"homeScore,omitempty"`
	AwayScore string `json:"awayScore,omitempty"`
}

// Validate checks that date, time and both team columns are mapped.
func (m Mapping) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"date", m.Date},
		{"time", m.Time},
		{"homeTeam", m.HomeTeam},
		{"awayTeam", m.AwayTeam},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.Join(ErrIncompleteMapping, errors.New("missing "+strings.Join(missing, ", ")))
	}
	return nil
}

// Merge overlays the non-empty fields of update onto m.
func (m Mapping) Merge(update Mapping) Mapping {
	pick := func(cur, next string) string {
		if next != "" {
			return next
		}
		return cur
	}
	return Mapping{
		Date:      pick(m.Date, update.Date),
		Time:      pick(m.Time, update.Time),
		HomeTeam:  pick(m.HomeTeam, update.HomeTeam),
		AwayTeam:  pick(m.AwayTeam, update.AwayTeam),
		HomeCity:  pick(m.HomeCity, update.HomeCity),
		HomeState: pick(m.HomeState, update.HomeState),
		AwayCity:  pick(m.AwayCity, update.AwayCity),
		AwayState: pick(m.AwayState, update.AwayState),
		HomeScore: pick(m.HomeScore, update.HomeScore),
		AwayScore: pick(m.AwayScore, update.AwayScore),
	}
}

var (
	dateColumns      = []string{"date", "game date", "day", "game day"}
	timeColumns      = []string{"time", "game time", "start time", "start"}
	homeTeamColumns  = []string{"home team", "home", "home school", "host"}
	awayTeamColumns  = []string{"away team", "away", "away school", "opponent", "visiting team", "visitor"}
	homeCityColumns  = []string{"home city", "city", "host city"}
	homeStateColumns = []string{"home state", "state", "host state"}
	awayCityColumns  = []string{"away city", "opponent city", "visitor city"}
	awayStateColumns = []string{"away state", "opponent state", "visitor state"}
	homeScoreColumns = []string{"home score", "home pts", "home points"}
	awayScoreColumns = []string{"away score", "opponent score", "visitor score", "away pts", "away points"}
)

// DetectMapping guesses the column for each field from the headers: an exact
// case-insensitive match on any candidate wins over a substring match.
func DetectMapping(headers []string) Mapping {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	find := func(candidates []string) string {
		return bestMatch(headers, lower, candidates)
	}
	return Mapping{
		Date:      find(dateColumns),
		Time:      find(timeColumns),
		HomeTeam:  find(homeTeamColumns),
		AwayTeam:  find(awayTeamColumns),
		HomeCity:  find(homeCityColumns),
		HomeState: find(homeStateColumns),
		AwayCity:  find(awayCityColumns),
		AwayState: find(awayStateColumns),
		HomeScore: find(homeScoreColumns),
		AwayScore: find(awayScoreColumns),
	}
}

func bestMatch(headers, lower, candidates []string) string {
	for _, candidate := range candidates {
		for i, h := range lower {
			if h == candidate {
				return headers[i]
			}
		}
	}
	for _, candidate := range candidates {
		for i, h := range lower {
			if strings.Contains(h, candidate) {
				return headers[i]
			}
		}
	}
	return ""
}
