package naming

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Oakdale HS", "Oakdale High School"},
		{"Sierra H.S.", "Sierra High School"},
		{"Lincoln JHS", "Lincoln Junior High School"},
		{`"Oakdale HS"`, "Oakdale High School"},
		{"“Oakdale HS”", "Oakdale High School"},
		{"Batavia HS (Coming Home )", "Batavia High School"},
		{"Milford High School (@ Cleveland)", "Milford High School"},
		{"Loveland Jr/Sr HS", "Loveland High School"},
		{"Springfield Jr./Sr. High School", "Springfield High School"},
		{"Santiago/C", "Santiago Corona"},
		{"Poly/LB", "Poly Long Beach"},
		{"Pacifica Chr/OC", "Pacifica Christian Orange County"},
		{"Lutheran/O", "Lutheran Orange"},
		{"Oakdale High", "Oakdale High School"},
		{"Oakdale High.", "Oakdale High School"},
		{"Lincoln Jr. High", "Lincoln Junior High School"},
		{"Wildwood MS", "Wildwood Middle School"},
		{"Brookside Elem", "Brookside Elementary School"},
		{"Cornerstone Acad", "Cornerstone Academy"},
		{"Bishop Prep", "Bishop Preparatory"},
		{"  Valley   Christian  ", "Valley Christian"},
		{"Central High School School", "Central High School"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestCoreName(t *testing.T) {
	cases := map[string]string{
		"Oakdale High School":         "Oakdale",
		"Sierra HS":                   "Sierra",
		"Lincoln Academy":             "Lincoln",
		"Wildwood Middle High School": "Wildwood",
		"Bishop Prep School":          "Bishop",
		"Lincoln JHS":                 "Lincoln",
		"High School":                 "",
	}
	for in, want := range cases {
		if got := CoreName(in); got != want {
			t.Fatalf("CoreName(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestPrimaryKeyword(t *testing.T) {
	cases := map[string]string{
		"Wildwood High School": "wildwood",
		"The Oakdale HS":       "oakdale",
		"Mater Dei Prep":       "mater",
		"Of In HS":             "",
	}
	for in, want := range cases {
		if got := PrimaryKeyword(in); got != want {
			t.Fatalf("PrimaryKeyword(%q): expected %q, got %q", in, want, got)
		}
	}
}

var (
	nameRoots = []string{
		"Oakdale", "Sierra", "Lincoln", "Wildwood", "Riverview", "Santiago/C", "Poly/LB",
		"Pacifica Chr/OC", "Mater Dei", "St. Mary's", "The Bishop", "Valley Christian",
	}
	nameSuffixes = []string{
		"", "HS", "H.S.", "High", "High School", "Jr/Sr HS", "Jr./Sr. High School", "JHS",
		"Jr. High", "MS", "Middle School", "Elem", "Acad", "Academy", "Prep", "Prep School",
		"Hi Sch", "High.",
	}
	annotations = []string{"", " (Coming Home)", " (@ Cleveland)", " (Senior Night)"}
)

func randomTeamName(f *gofakeit.Faker) string {
	name := f.RandomString(nameRoots) + " " + f.RandomString(nameSuffixes) + f.RandomString(annotations)
	if f.Bool() {
		name = fmt.Sprintf("%q", name)
	}
	return name
}

func TestNormalizeIsIdempotent(t *testing.T) {
	f := gofakeit.New(42)
	for i := 0; i < 500; i++ {
		raw := randomTeamName(f)
		once := Normalize(raw)
		require.Equal(t, once, Normalize(once), "raw input %q", raw)
	}
}

func TestParseTeamName(t *testing.T) {
	cases := []struct {
		in   string
		want ParsedTeamName
	}{
		{"Sierra(Manteca, CA)", ParsedTeamName{TeamName: "Sierra", City: "Manteca", State: "CA"}},
		{"Sierra (Manteca, CA) ", ParsedTeamName{TeamName: "Sierra", City: "Manteca", State: "CA"}},
		{"  Sierra ", ParsedTeamName{TeamName: "Sierra"}},
		{"Batavia HS (Coming Home)", ParsedTeamName{TeamName: "Batavia HS (Coming Home)"}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ParseTeamName(tc.in), "input %q", tc.in)
	}
}
