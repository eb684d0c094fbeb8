package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/contest-digest/internal/contest"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortBySource SortOrder = "source"
	SortByStart  SortOrder = "start"
	SortByName   SortOrder = "name"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case SortBySource, SortByStart, SortByName:
		return o, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'source', 'start' or 'name')", s)
}

// sortSchedule returns a copy of s with each platform's list reordered.
// SortBySource returns s itself, since lists already follow the page order.
func sortSchedule(s *contest.Schedule, order SortOrder) *contest.Schedule {
	if order == SortBySource || order == "" {
		return s
	}

	out := *s
	out.Codeforces = sortContests(s.Codeforces, order)
	out.AtCoder = sortContests(s.AtCoder, order)
	out.Luogu = sortContests(s.Luogu, order)
	return &out
}

func sortContests(list []contest.Contest, order SortOrder) []contest.Contest {
	sorted := append([]contest.Contest(nil), list...)
	if sorted == nil {
		sorted = []contest.Contest{}
	}

	switch order {
	case SortByStart:
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareByStart(sorted[i], sorted[j])
		})
	case SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			if !strings.EqualFold(sorted[i].Name, sorted[j].Name) {
				return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
			}
			return compareByStart(sorted[i], sorted[j])
		})
	}
	return sorted
}

// compareByStart orders by parsed start; contests without one go last
func compareByStart(a, b contest.Contest) bool {
	switch {
	case a.Start.Parsed() && b.Start.Parsed():
		return a.Start.Time().Before(b.Start.Time())
	case a.Start.Parsed():
		return true
	default:
		return false
	}
}
