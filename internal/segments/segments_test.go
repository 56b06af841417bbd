package segments

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
)

func TestSelectFinal(t *testing.T) {
	cases := []struct {
		name    string
		list    []games.Segment
		finalID int
		want    Selection
	}{
		{
			name: "total is never used",
			list: []games.Segment{{GameSegmentID: 10010}, {GameSegmentID: 10020}, {GameSegmentID: 19888, SegmentName: "Total"}},
			want: Selection{GameSegmentID: DefaultFinalSegmentID, Source: SourceKnownFinalID},
		},
		{
			name: "final by id",
			list: []games.Segment{{GameSegmentID: 10010}, {GameSegmentID: 19999, SegmentName: "Final"}},
			want: Selection{GameSegmentID: 19999, Source: SourceFinalByID, SegmentName: "Final"},
		},
		{
			name: "final by name",
			list: []games.Segment{{GameSegmentID: 10010, SegmentName: "Q1"}, {GameSegmentID: 15000, SegmentName: "FINAL SCORE"}},
			want: Selection{GameSegmentID: 15000, Source: SourceFinalByName, SegmentName: "FINAL SCORE"},
		},
		{
			name: "game name counts as final",
			list: []games.Segment{{GameSegmentID: 12000, SegmentName: "Game"}},
			want: Selection{GameSegmentID: 12000, Source: SourceFinalByName, SegmentName: "Game"},
		},
		{
			name: "f name counts as final",
			list: []games.Segment{{GameSegmentID: 12001, SegmentName: "f"}},
			want: Selection{GameSegmentID: 12001, Source: SourceFinalByName, SegmentName: "f"},
		},
		{
			name: "id beats name",
			list: []games.Segment{{GameSegmentID: 15000, SegmentName: "Final"}, {GameSegmentID: 19999}},
			want: Selection{GameSegmentID: 19999, Source: SourceFinalByID},
		},
		{
			name: "empty list",
			want: Selection{GameSegmentID: DefaultFinalSegmentID, Source: SourceKnownFinalID},
		},
		{
			name:    "configured final id",
			list:    []games.Segment{{GameSegmentID: 1000, SegmentName: "Final"}},
			finalID: 1000,
			want:    Selection{GameSegmentID: 1000, Source: SourceFinalByID, SegmentName: "Final"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectFinal(tc.list, tc.finalID)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
