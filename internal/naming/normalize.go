// Package naming canonicalizes noisy school and team names for matching.
package naming

import (
	"regexp"
	"strings"
)

type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

var (
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
	doubleSchoolPattern  = regexp.MustCompile(`(?i)\bSchool\s+School\b`)
)

// slashCities expands trailing city codes like "Poly/LB". Order matters: /OC before /O.
var slashCities = []rewrite{
	{regexp.MustCompile(`(?i)/C\b`), " Corona"},
	{regexp.MustCompile(`(?i)/OC\b`), " Orange County"},
	{regexp.MustCompile(`(?i)/LB\b`), " Long Beach"},
	{regexp.MustCompile(`(?i)/O\b`), " Orange"},
	{regexp.MustCompile(`(?i)/LA\b`), " Los Angeles"},
	{regexp.MustCompile(`(?i)/SB\b`), " Santa Barbara"},
	{regexp.MustCompile(`(?i)/SD\b`), " San Diego"},
	{regexp.MustCompile(`(?i)/SF\b`), " San Francisco"},
	{regexp.MustCompile(`(?i)/IE\b`), " Inland Empire"},
	{regexp.MustCompile(`(?i)/SJ\b`), " San Jose"},
	{regexp.MustCompile(`(?i)/VC\b`), " Ventura County"},
}

// suffixRules regularize school-level abbreviations. Combined Jr/Sr forms run before the plain
// high school rules so "Jr/Sr HS" does not become "Jr/Sr High School".
var suffixRules = []rewrite{
	{regexp.MustCompile(`(?i)\bJr\.?/Sr\.?\s+H\.?S\.?\b`), "High School"},
	{regexp.MustCompile(`(?i)\bJr\.?/Sr\.?\s+High School\b`), "High School"},
	{regexp.MustCompile(`(?i)\bJr\.?-Sr\.?\s+H\.?S\.?\b`), "High School"},
	{regexp.MustCompile(`(?i)\bJunior/Senior\s+High School\b`), "High School"},

	{regexp.MustCompile(`(?i)\bH\.?S\.?\b`), "High School"},
	{regexp.MustCompile(`(?i)\bHigh Sch\b`), "High School"},
	{regexp.MustCompile(`(?i)\bHi Sch\b`), "High School"},
	{regexp.MustCompile(`(?i)\bHigh\b$`), "High School"},

	{regexp.MustCompile(`(?i)\bJ\.?H\.?S\.?\b`), "Junior High School"},
	{regexp.MustCompile(`(?i)\bJr\.? High\b`), "Junior High School"},
	{regexp.MustCompile(`(?i)\bJunior High\b`), "Junior High School"},

	{regexp.MustCompile(`(?i)\bM\.?S\.?\b`), "Middle School"},
	{regexp.MustCompile(`(?i)\bMid\.? Sch\b`), "Middle School"},

	{regexp.MustCompile(`(?i)\bElem\b`), "Elementary School"},
	{regexp.MustCompile(`(?i)\bEl\.? Sch\b`), "Elementary School"},

	{regexp.MustCompile(`(?i)\bAcad\b`), "Academy"},
	{regexp.MustCompile(`(?i)\bAca\b`), "Academy"},

	{regexp.MustCompile(`(?i)\bPrep\b`), "Preparatory"},

	{regexp.MustCompile(`(?i)\bChr\b`), "Christian"},
}

// coreSuffixes are removed entirely by CoreName, longest first.
var coreSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bMiddle High School\b`),
	regexp.MustCompile(`(?i)\bJunior High School\b`),
	regexp.MustCompile(`(?i)\bElementary School\b`),
	regexp.MustCompile(`(?i)\bHigh School\b`),
	regexp.MustCompile(`(?i)\bMiddle School\b`),
	regexp.MustCompile(`(?i)\bPreparatory School\b`),
	regexp.MustCompile(`(?i)\bPreparatory\b`),
	regexp.MustCompile(`(?i)\bAcademy\b`),
	regexp.MustCompile(`(?i)\bSchool\b`),
}

var stopWords = map[string]struct{}{
	"the": {}, "of": {}, "and": {}, "at": {}, "in": {}, "for": {},
}

const quoteChars = "\"'“”‘’"

// Normalize canonicalizes a raw team name: quotes, parentheticals and city codes are removed
// or expanded and school-level abbreviations are spelled out.
//
//	"Oakdale HS"               -> "Oakdale High School"
//	"Loveland Jr/Sr HS"        -> "Loveland High School"
//	"Pacifica Chr/OC"          -> "Pacifica Christian Orange County"
//	"Batavia HS (Coming Home)" -> "Batavia High School"
func Normalize(raw string) string {
	name := stripQuotes(strings.TrimSpace(raw))
	name = parentheticalPattern.ReplaceAllString(name, " ")
	name = tidy(name)

	for _, r := range slashCities {
		name = r.pattern.ReplaceAllString(name, r.replacement)
	}
	for _, r := range suffixRules {
		name = r.pattern.ReplaceAllString(name, r.replacement)
	}

	name = tidy(name)
	for doubleSchoolPattern.MatchString(name) {
		name = doubleSchoolPattern.ReplaceAllString(name, "School")
	}
	return name
}

// CoreName strips every school-level suffix from the normalized name.
// The result may be empty, e.g. for "High School".
func CoreName(raw string) string {
	core := Normalize(raw)
	for _, suffix := range coreSuffixes {
		core = suffix.ReplaceAllString(core, "")
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(core, " "))
}

// PrimaryKeyword returns the first significant lowercase word of the core name.
func PrimaryKeyword(raw string) string {
	for _, word := range strings.Fields(strings.ToLower(CoreName(raw))) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		return word
	}
	return ""
}

// comparisonForm lowercases the normalized name and drops stop words.
func comparisonForm(raw string) string {
	words := strings.Fields(strings.ToLower(Normalize(raw)))
	kept := words[:0]
	for _, word := range words {
		if _, stop := stopWords[word]; !stop {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

func stripQuotes(s string) string {
	if s == "" {
		return s
	}
	if r := []rune(s); strings.ContainsRune(quoteChars, r[0]) {
		s = string(r[1:])
	}
	if r := []rune(s); len(r) > 0 && strings.ContainsRune(quoteChars, r[len(r)-1]) {
		s = string(r[:len(r)-1])
	}
	return strings.TrimSpace(s)
}

// tidy collapses whitespace and drops one trailing period.
func tidy(s string) string {
	s = strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
	return strings.TrimSpace(strings.TrimSuffix(s, "."))
}
