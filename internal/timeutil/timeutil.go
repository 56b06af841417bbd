// Package timeutil turns free-form schedule dates and times into local ISO datetimes.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingDate = errors.New("missing date")
	ErrMissingTime = errors.New("missing time")
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

// ParseError names the part and field that could not be parsed.
type ParseError struct {
	Part   string
	Field  string
	Value  string
	Reason error
}

func (e *ParseError) Error() string {
	switch {
	case e.Reason == ErrMissingDate || e.Reason == ErrMissingTime:
		return e.Part + " is required"
	case e.Field == "":
		return fmt.Sprintf("unrecognized %s format %q", e.Part, e.Value)
	default:
		return fmt.Sprintf("invalid %s %s in %s", e.Field, e.Value, e.Part)
	}
}

func (e *ParseError) Unwrap() error { return e.Reason }

// Date is a calendar date without a zone.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

var (
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	textDatePattern  = regexp.MustCompile(`(?i)^(?:(?:[a-z]+day|sun|mon|tues?|wed|thu(?:rs?)?|fri|sat)\.?,?\s+)?([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)
	clockPattern     = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?\s*(?:([AaPp])\.?\s*[Mm]\.?)?$`)
)

var months = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// Parser parses schedule dates. Now supplies the year for dates written without one.
type Parser struct {
	Now func() time.Time
}

var defaultParser = Parser{Now: time.Now}

// Combine joins a date and a time into "YYYY-MM-DDTHH:MM:00".
func Combine(date, clock string) (string, error) {
	return defaultParser.Combine(date, clock)
}

// ParseDateParts parses a date using the current year for year-less forms.
func ParseDateParts(raw string) (Date, error) {
	return defaultParser.ParseDate(raw)
}

// Combine joins a date and a time into "YYYY-MM-DDTHH:MM:00".
func (p Parser) Combine(date, clock string) (string, error) {
	if strings.TrimSpace(date) == "" {
		return "", &ParseError{Part: "date", Reason: ErrMissingDate}
	}
	if strings.TrimSpace(clock) == "" {
		return "", &ParseError{Part: "time", Reason: ErrMissingTime}
	}
	d, err := p.ParseDate(date)
	if err != nil {
		return "", err
	}
	c, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00", d.Year, d.Month, d.Day, c.Hour, c.Minute), nil
}

// ParseDate accepts M/D/YYYY, M/D/YY, YYYY-MM-DD and forms like "Sat, Feb 11" or
// "February 11th, 2025".
func (p Parser) ParseDate(raw string) (Date, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Date{}, &ParseError{Part: "date", Reason: ErrMissingDate}
	}

	var d Date
	switch {
	case slashDatePattern.MatchString(value):
		m := slashDatePattern.FindStringSubmatch(value)
		d = Date{Month: atoi(m[1]), Day: atoi(m[2]), Year: expandYear(m[3])}
	case isoDatePattern.MatchString(value):
		m := isoDatePattern.FindStringSubmatch(value)
		d = Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
	case textDatePattern.MatchString(value):
		m := textDatePattern.FindStringSubmatch(value)
		month, ok := months[strings.ToLower(m[1])]
		if !ok {
			return Date{}, &ParseError{Part: "date", Value: value, Reason: ErrInvalidDate}
		}
		d = Date{Month: month, Day: atoi(m[2])}
		if m[3] != "" {
			d.Year = atoi(m[3])
		} else {
			d.Year = p.now().Year()
		}
	default:
		return Date{}, &ParseError{Part: "date", Value: value, Reason: ErrInvalidDate}
	}

	if err := checkRange("date", "month", d.Month, 1, 12); err != nil {
		return Date{}, err
	}
	if err := checkRange("date", "day", d.Day, 1, 31); err != nil {
		return Date{}, err
	}
	if err := checkRange("date", "year", d.Year, 1900, 2100); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ParseClock accepts H:MM or H:MM:SS with an optional AM/PM marker. Seconds are dropped.
func ParseClock(raw string) (Clock, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Clock{}, &ParseError{Part: "time", Reason: ErrMissingTime}
	}
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return Clock{}, &ParseError{Part: "time", Value: value, Reason: ErrInvalidTime}
	}

	c := Clock{Hour: atoi(m[1]), Minute: atoi(m[2])}
	switch strings.ToLower(m[3]) {
	case "p":
		if c.Hour != 12 {
			c.Hour += 12
		}
	case "a":
		if c.Hour == 12 {
			c.Hour = 0
		}
	}

	if err := checkRange("time", "hour", c.Hour, 0, 23); err != nil {
		return Clock{}, err
	}
	if err := checkRange("time", "minute", c.Minute, 0, 59); err != nil {
		return Clock{}, err
	}
	return c, nil
}

func (p Parser) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func checkRange(part, field string, value, lo, hi int) error {
	if value < lo || value > hi {
		reason := ErrInvalidDate
		if part == "time" {
			reason = ErrInvalidTime
		}
		return &ParseError{Part: part, Field: field, Value: strconv.Itoa(value), Reason: reason}
	}
	return nil
}

// expandYear maps two-digit years: 50-99 to 19xx, 00-49 to 20xx.
func expandYear(raw string) int {
	year := atoi(raw)
	if len(raw) != 2 {
		return year
	}
	if year >= 50 {
		return 1900 + year
	}
	return 2000 + year
}

// atoi is only called on regexp digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
