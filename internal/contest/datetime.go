package contest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CanonicalLayout is the serialized form produced by AddHours
const CanonicalLayout = "2006-01-02 15:04:05"

// canonicalPattern matches "YYYY-MM-DD HH:MM" with optional seconds, anywhere in the text
var canonicalPattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})\s+(\d{2}):(\d{2})(?::(\d{2}))?`)

// leadingNumber matches the numeric prefix of a duration cell such as "2.5" or "2 hours"
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)

// DateTime is the result of parsing a canonical source date-time.
// It is either parsed, carrying a naive wall-clock instant, or unparsed, carrying only
// the original text. The instant uses time.UTC as a neutral tag; no conversion ever happens.
type DateTime struct {
	raw    string
	t      time.Time
	parsed bool
}

// ParseDateTime parses a "YYYY-MM-DD HH:MM[:SS]" string.
// Text that does not match, or names an impossible date, yields an unparsed DateTime.
func ParseDateTime(raw string) DateTime {
	raw = strings.TrimSpace(raw)
	m := canonicalPattern.FindStringSubmatch(raw)
	if m == nil {
		return DateTime{raw: raw}
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second := 0
	if m[6] != "" {
		second, _ = strconv.Atoi(m[6])
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); treat that as a mismatch
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return DateTime{raw: raw}
	}

	return DateTime{raw: raw, t: t, parsed: true}
}

// Parsed reports whether the source text matched the canonical pattern
func (d DateTime) Parsed() bool {
	return d.parsed
}

// Raw returns the original (trimmed) source text
func (d DateTime) Raw() string {
	return d.raw
}

// Time returns the wall-clock instant, or the zero time when unparsed
func (d DateTime) Time() time.Time {
	return d.t
}

// Fields returns (year, month, day, hour, minute, second) of a parsed value
func (d DateTime) Fields() (year int, month time.Month, day, hour, minute, second int) {
	return d.t.Year(), d.t.Month(), d.t.Day(), d.t.Hour(), d.t.Minute(), d.t.Second()
}

// String returns the canonical serialization, or the raw text when unparsed
func (d DateTime) String() string {
	if !d.parsed {
		return d.raw
	}
	return d.t.Format(CanonicalLayout)
}

// Format renders the value with a Go time layout, passing unparsed text through as-is
func (d DateTime) Format(layout string) string {
	if !d.parsed {
		return d.raw
	}
	return d.t.Format(layout)
}

// AddHours advances a parsed value by a possibly fractional number of hours.
// The offset is rounded to the nearest minute. Unparsed values are returned unchanged.
func (d DateTime) AddHours(hours float64) DateTime {
	if !d.parsed {
		return d
	}
	minutes := math.Round(hours * 60)
	t := d.t.Add(time.Duration(minutes) * time.Minute)
	return DateTime{raw: t.Format(CanonicalLayout), t: t, parsed: true}
}

// In places the wall-clock fields in loc, for consumers that need a real instant
// (calendar export). Unparsed values return the zero time.
func (d DateTime) In(loc *time.Location) time.Time {
	if !d.parsed {
		return time.Time{}
	}
	year, month, day, hour, minute, second := d.Fields()
	return time.Date(year, month, day, hour, minute, second, 0, loc)
}

// WallClock strips the location from t, keeping its wall-clock reading.
// Use it to compare "now" against source date-times.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseDuration reads a duration cell in hours.
// Like a lenient float parse, trailing text after the number is ignored.
func ParseDuration(text string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(text))
	if m == "" {
		return 0, false
	}
	hours, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, false
	}
	return hours, true
}
