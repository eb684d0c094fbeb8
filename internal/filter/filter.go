// Package filter narrows a schedule down to the contests a reader cares about.
//
// Criteria combine with AND; values inside one criterion combine with OR:
//   - Platforms (exact)
//   - Names (substring matching, case-insensitive)
//   - Types (Luogu contest tags, case-insensitive)
//   - Weekends only (start on Saturday/Sunday)
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Platforms = []contest.Platform{contest.Codeforces}
//	f.Names = []string{"Div. 2"}
//
//	narrowed := f.Apply(schedule)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/contest-digest/internal/contest"
)

// Filter represents contest filtering criteria
type Filter struct {
	Platforms    []contest.Platform `json:"platforms,omitempty"`
	Names        []string           `json:"names,omitempty"`
	Types        []string           `json:"types,omitempty"`
	WeekendsOnly bool               `json:"weekends_only,omitempty"`
}

// NewFilter creates an empty filter that matches every contest.
func NewFilter() *Filter {
	return &Filter{
		Platforms: []contest.Platform{},
		Names:     []string{},
		Types:     []string{},
	}
}

// IsEmpty reports whether the filter has no active criteria.
func (f *Filter) IsEmpty() bool {
	return len(f.Platforms) == 0 &&
		len(f.Names) == 0 &&
		len(f.Types) == 0 &&
		!f.WeekendsOnly
}

// AllowsPlatform reports whether contests of platform p can pass the filter at all.
func (f *Filter) AllowsPlatform(p contest.Platform) bool {
	if len(f.Platforms) == 0 {
		return true
	}
	for _, allowed := range f.Platforms {
		if allowed == p {
			return true
		}
	}
	return false
}

// Matches checks a contest against all active criteria.
// A contest whose start could not be parsed never passes WeekendsOnly.
func (f *Filter) Matches(c contest.Contest) bool {
	if !f.AllowsPlatform(c.Platform) {
		return false
	}

	if f.WeekendsOnly {
		if !c.Start.Parsed() {
			return false
		}
		weekday := c.Start.Time().Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			return false
		}
	}

	if len(f.Names) > 0 && !containsAny(c.Name, f.Names) {
		return false
	}

	if len(f.Types) > 0 {
		matched := false
		for _, t := range f.Types {
			if strings.EqualFold(c.Type, t) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func containsAny(s string, needles []string) bool {
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// Apply returns a copy of the schedule holding only matching contests.
// IDs and order are kept as they were, so filtered IDs may have gaps.
// An empty filter returns the schedule unchanged.
func (f *Filter) Apply(s *contest.Schedule) *contest.Schedule {
	if f.IsEmpty() {
		return s
	}

	out := contest.NewSchedule(s.LastUpdated)
	out.Error = s.Error
	out.Codeforces = f.applyList(s.Codeforces)
	out.AtCoder = f.applyList(s.AtCoder)
	out.Luogu = f.applyList(s.Luogu)
	return out
}

func (f *Filter) applyList(list []contest.Contest) []contest.Contest {
	kept := make([]contest.Contest, 0, len(list))
	for _, c := range list {
		if f.Matches(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// String returns a human-readable description of the active criteria.
// Format: "Platforms: Codeforces, Luogu | Names: div. 2 | Weekends only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if len(f.Platforms) > 0 {
		names := make([]string, len(f.Platforms))
		for i, p := range f.Platforms {
			names[i] = string(p)
		}
		parts = append(parts, fmt.Sprintf("Platforms: %s", strings.Join(names, ", ")))
	}

	if len(f.Names) > 0 {
		parts = append(parts, fmt.Sprintf("Names: %s", strings.Join(f.Names, ", ")))
	}

	if len(f.Types) > 0 {
		parts = append(parts, fmt.Sprintf("Types: %s", strings.Join(f.Types, ", ")))
	}

	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	clone := &Filter{WeekendsOnly: f.WeekendsOnly}
	clone.Platforms = append([]contest.Platform{}, f.Platforms...)
	clone.Names = append([]string{}, f.Names...)
	clone.Types = append([]string{}, f.Types...)
	return clone
}
