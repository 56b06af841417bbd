package naming

import (
	"regexp"
	"strings"
)

var locationPattern = regexp.MustCompile(`^(.+?)\s*\(([^,]+),\s*([^)]+)\)\s*$`)

// ParsedTeamName is a raw team token split from an embedded "(City, ST)" annotation.
type ParsedTeamName struct {
	TeamName string `json:"teamName"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
}

// ParseTeamName extracts a trailing location group such as "Sierra (Manteca, CA)".
// Text without one is returned trimmed as the team name.
func ParseTeamName(raw string) ParsedTeamName {
	m := locationPattern.FindStringSubmatch(raw)
	if m == nil {
		return ParsedTeamName{TeamName: strings.TrimSpace(raw)}
	}
	return ParsedTeamName{
		TeamName: strings.TrimSpace(m[1]),
		City:     strings.TrimSpace(m[2]),
		State:    strings.TrimSpace(m[3]),
	}
}
