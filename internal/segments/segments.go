// Package segments picks the game segment that carries a final score.
package segments

import (
	"strings"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
)

// DefaultFinalSegmentID is the id the remote service uses for the synthesized Final segment.
const DefaultFinalSegmentID = 19999

// Source explains how a segment was chosen.
type Source string

const (
	SourceFinalByID    Source = "final-by-id"
	SourceFinalByName  Source = "final-by-name"
	SourceKnownFinalID Source = "known-final-id"
)

// Selection is the segment a final score should be posted to.
type Selection struct {
	GameSegmentID int    `json:"gameSegmentId"`
	Source        Source `json:"source"`
	SegmentName   string `json:"segmentName,omitempty"`
}

// SelectFinal picks the Final segment: by id, then by name ("final", "game" or "f"), and
// otherwise the known Final id even when the list omits it. A Total segment is never used.
func SelectFinal(list []games.Segment, finalID int) Selection {
	if finalID == 0 {
		finalID = DefaultFinalSegmentID
	}

	for _, seg := range list {
		if seg.GameSegmentID == finalID {
			return Selection{GameSegmentID: seg.GameSegmentID, Source: SourceFinalByID, SegmentName: seg.SegmentName}
		}
	}

	for _, seg := range list {
		if isFinalName(seg.SegmentName) {
			return Selection{GameSegmentID: seg.GameSegmentID, Source: SourceFinalByName, SegmentName: seg.SegmentName}
		}
	}

	return Selection{GameSegmentID: finalID, Source: SourceKnownFinalID}
}

func isFinalName(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	return strings.Contains(name, "final") || name == "game" || name == "f"
}
