package contest

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPlatform_MatchHeading(t *testing.T) {
	tests := []struct {
		platform Platform
		heading  string
		want     bool
	}{
		{Codeforces, "Codeforces 比赛", true},
		{Codeforces, "codeforces", false},
		{AtCoder, "AtCoder Contests", true},
		{AtCoder, "Atcoder", false},
		{Luogu, "Luogu", true},
		{Luogu, "洛谷比赛", true},
		{Luogu, "Codeforces", false},
	}

	for _, tt := range tests {
		if got := tt.platform.MatchHeading(tt.heading); got != tt.want {
			t.Errorf("%s.MatchHeading(%q) = %v, want %v", tt.platform, tt.heading, got, tt.want)
		}
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"codeforces", Codeforces, false},
		{"CF", Codeforces, false},
		{" AtCoder ", AtCoder, false},
		{"lg", Luogu, false},
		{"洛谷", Luogu, false},
		{"topcoder", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePlatform(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePlatform(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePlatform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSchedule_JSONShape(t *testing.T) {
	updated := time.Date(2026, 1, 29, 12, 0, 0, 0, time.UTC)
	s := &Schedule{
		Codeforces: []Contest{{
			ID:        "cf-0",
			Platform:  Codeforces,
			Name:      "Round",
			StartTime: "01-29 22:35",
			EndTime:   "01-30 01:05",
		}},
		LastUpdated: updated,
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)

	for _, want := range []string{
		`"codeforces":[{"id":"cf-0","platform":"Codeforces","name":"Round","startTime":"01-29 22:35","endTime":"01-30 01:05"}]`,
		`"atcoder":[]`,
		`"luogu":[]`,
		`"lastUpdated":1769688000000`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Marshal() = %s, missing %s", got, want)
		}
	}
	if strings.Contains(got, `"error"`) {
		t.Errorf("Marshal() = %s, error field should be omitted", got)
	}

	var back Schedule
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.LastUpdated.Equal(updated) || len(back.Codeforces) != 1 || back.AtCoder == nil {
		t.Errorf("Unmarshal() = %+v", back)
	}
}

func TestSchedule_WithErrorCopies(t *testing.T) {
	s := NewSchedule(time.Now())
	annotated := s.WithError("upstream down")

	if s.Error != "" {
		t.Errorf("original schedule modified: Error = %q", s.Error)
	}
	if annotated.Error != "upstream down" {
		t.Errorf("annotated Error = %q", annotated.Error)
	}
	if annotated.Codeforces == nil || annotated.AtCoder == nil || annotated.Luogu == nil {
		t.Error("annotated schedule lost its lists")
	}
}

func TestSchedule_List(t *testing.T) {
	s := NewSchedule(time.Now())
	s.AtCoder = append(s.AtCoder, Contest{ID: "ac-0"})

	if got := s.List(AtCoder); len(got) != 1 {
		t.Errorf("List(AtCoder) len = %d, want 1", len(got))
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
