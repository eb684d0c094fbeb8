package cli

import (
	"testing"

	"github.com/pfrederiksen/contest-digest/internal/contest"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input   string
		want    SortOrder
		wantErr bool
	}{
		{"source", SortBySource, false},
		{"start", SortByStart, false},
		{"NAME", SortByName, false},
		{"date", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortOrder(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortOrder(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortOrder(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func ids(list []contest.Contest) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortSchedule(t *testing.T) {
	s := testSchedule()

	tests := []struct {
		name  string
		order SortOrder
		want  []string
	}{
		{"source keeps page order", SortBySource, []string{"cf-0", "cf-1"}},
		{"start ascending", SortByStart, []string{"cf-1", "cf-0"}},
		{"name case-insensitive", SortByName, []string{"cf-0", "cf-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortSchedule(s, tt.order)
			if !equalIDs(ids(got.Codeforces), tt.want) {
				t.Errorf("Codeforces order = %v, want %v", ids(got.Codeforces), tt.want)
			}
		})
	}

	// the input schedule is never reordered
	if !equalIDs(ids(s.Codeforces), []string{"cf-0", "cf-1"}) {
		t.Errorf("input was modified: %v", ids(s.Codeforces))
	}
}

func TestSortContests_UnparsedLast(t *testing.T) {
	list := []contest.Contest{
		{ID: "a", Name: "A", Start: contest.ParseDateTime("TBD")},
		{ID: "b", Name: "B", Start: contest.ParseDateTime("2026-02-01 10:00:00")},
		{ID: "c", Name: "C", Start: contest.ParseDateTime("2026-01-31 10:00:00")},
	}

	got := ids(sortContests(list, SortByStart))
	want := []string{"c", "b", "a"}
	if !equalIDs(got, want) {
		t.Errorf("sortContests() = %v, want %v", got, want)
	}
}

func TestSortContests_EmptyStaysNonNil(t *testing.T) {
	if got := sortContests(nil, SortByStart); got == nil {
		t.Error("sortContests(nil) should return an empty, non-nil slice")
	}
}
