package contest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Platform identifies one of the supported contest platforms
type Platform string

const (
	Codeforces Platform = "Codeforces"
	AtCoder    Platform = "AtCoder"
	Luogu      Platform = "Luogu"
)

// Platforms lists every platform in display order
var Platforms = []Platform{Codeforces, AtCoder, Luogu}

// luoguLocalName is the Chinese name used by some page headings for Luogu
const luoguLocalName = "洛谷"

// Prefix returns the short tag used to build contest IDs
func (p Platform) Prefix() string {
	switch p {
	case Codeforces:
		return "cf"
	case AtCoder:
		return "ac"
	case Luogu:
		return "lg"
	default:
		return strings.ToLower(string(p))
	}
}

// MatchHeading reports whether a section heading belongs to the platform.
// Matching is a case-sensitive substring check.
func (p Platform) MatchHeading(text string) bool {
	switch p {
	case Luogu:
		return strings.Contains(text, string(Luogu)) || strings.Contains(text, luoguLocalName)
	default:
		return strings.Contains(text, string(p))
	}
}

// ParsePlatform resolves a user-supplied platform name (case-insensitive, prefixes accepted)
func ParsePlatform(s string) (Platform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Platforms {
		if s == strings.ToLower(string(p)) || s == p.Prefix() {
			return p, nil
		}
	}
	if s == luoguLocalName {
		return Luogu, nil
	}
	return "", fmt.Errorf("unknown platform: %q", s)
}

// Contest is one scheduled event on one platform, ready for display.
// StartTime and EndTime are already formatted for the platform and cannot be compared.
type Contest struct {
	ID        string   `json:"id"`
	Platform  Platform `json:"platform"`
	Name      string   `json:"name"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime,omitempty"`
	Type      string   `json:"type,omitempty"`
	URL       string   `json:"url,omitempty"`

	// Start and End keep the source date-times behind the display strings.
	Start DateTime `json:"-"`
	End   DateTime `json:"-"`
}

// Schedule is the aggregated result of one pipeline run.
// A Schedule is never mutated once built; WithError returns a copy.
type Schedule struct {
	Codeforces  []Contest
	AtCoder     []Contest
	Luogu       []Contest
	LastUpdated time.Time
	Error       string
}

// NewSchedule creates a schedule with three empty lists
func NewSchedule(lastUpdated time.Time) *Schedule {
	return &Schedule{
		Codeforces:  make([]Contest, 0),
		AtCoder:     make([]Contest, 0),
		Luogu:       make([]Contest, 0),
		LastUpdated: lastUpdated,
	}
}

// List returns the contests for a platform
func (s *Schedule) List(p Platform) []Contest {
	switch p {
	case Codeforces:
		return s.Codeforces
	case AtCoder:
		return s.AtCoder
	case Luogu:
		return s.Luogu
	}
	return nil
}

// Len returns the total number of contests across all platforms
func (s *Schedule) Len() int {
	return len(s.Codeforces) + len(s.AtCoder) + len(s.Luogu)
}

// WithError returns a shallow copy annotated with an advisory error.
// The contest slices are shared, which is safe because they are never modified.
func (s *Schedule) WithError(msg string) *Schedule {
	cp := *s
	cp.Error = msg
	return &cp
}

// scheduleJSON is the wire shape consumed by the presentation layer
type scheduleJSON struct {
	Codeforces  []Contest `json:"codeforces"`
	AtCoder     []Contest `json:"atcoder"`
	Luogu       []Contest `json:"luogu"`
	LastUpdated int64     `json:"lastUpdated"` // Unix milliseconds
	Error       string    `json:"error,omitempty"`
}

// MarshalJSON always emits all three lists, even when a platform has no contests
func (s *Schedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(scheduleJSON{
		Codeforces:  nonNil(s.Codeforces),
		AtCoder:     nonNil(s.AtCoder),
		Luogu:       nonNil(s.Luogu),
		LastUpdated: s.LastUpdated.UnixMilli(),
		Error:       s.Error,
	})
}

// UnmarshalJSON reads the wire shape back, used by tools that consume saved output
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var raw scheduleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Codeforces = nonNil(raw.Codeforces)
	s.AtCoder = nonNil(raw.AtCoder)
	s.Luogu = nonNil(raw.Luogu)
	s.LastUpdated = time.UnixMilli(raw.LastUpdated)
	s.Error = raw.Error
	return nil
}

func nonNil(list []Contest) []Contest {
	if list == nil {
		return make([]Contest, 0)
	}
	return list
}
