package contest

import "fmt"

// Entry is one accepted table row before window filtering and display formatting
type Entry struct {
	Platform Platform
	Name     string
	URL      string
	Type     string
	Start    DateTime
	End      DateTime // explicit end, Luogu only

	Duration    float64 // hours
	HasDuration bool
}

// Policy is the display-format table: one Go time layout per platform and the
// separator used when a start and an explicit end share one string.
type Policy struct {
	Codeforces     string `mapstructure:"codeforces"`
	AtCoder        string `mapstructure:"atcoder"`
	Luogu          string `mapstructure:"luogu"`
	RangeSeparator string `mapstructure:"range_separator"`
}

// DefaultPolicy renders Codeforces and Luogu as "MM-DD HH:MM" and AtCoder as
// "M/D(Day) HH:MM", the weekday coming from the date itself.
var DefaultPolicy = Policy{
	Codeforces:     "01-02 15:04",
	AtCoder:        "1/2(Mon) 15:04",
	Luogu:          "01-02 15:04",
	RangeSeparator: " ~ ",
}

// Layout returns the time layout for a platform, falling back to the default table
func (p Policy) Layout(platform Platform) string {
	var layout, fallback string
	switch platform {
	case Codeforces:
		layout, fallback = p.Codeforces, DefaultPolicy.Codeforces
	case AtCoder:
		layout, fallback = p.AtCoder, DefaultPolicy.AtCoder
	case Luogu:
		layout, fallback = p.Luogu, DefaultPolicy.Luogu
	default:
		return CanonicalLayout
	}
	if layout == "" {
		return fallback
	}
	return layout
}

func (p Policy) separator() string {
	if p.RangeSeparator == "" {
		return DefaultPolicy.RangeSeparator
	}
	return p.RangeSeparator
}

// Render converts an entry into a display-ready Contest with the given ordinal
func (p Policy) Render(e Entry, ordinal int) Contest {
	layout := p.Layout(e.Platform)
	c := Contest{
		ID:        fmt.Sprintf("%s-%d", e.Platform.Prefix(), ordinal),
		Platform:  e.Platform,
		Name:      e.Name,
		StartTime: e.Start.Format(layout),
		Type:      e.Type,
		URL:       e.URL,
		Start:     e.Start,
	}

	switch e.Platform {
	case Codeforces:
		// a non-numeric duration leaves the contest without an end
		if e.HasDuration && e.Start.Parsed() {
			c.End = e.Start.AddHours(e.Duration)
			c.EndTime = c.End.Format(layout)
		}
	case Luogu:
		if e.End.Raw() != "" {
			c.End = e.End
			c.EndTime = e.End.Format(layout)
			c.StartTime = c.StartTime + p.separator() + c.EndTime
		}
	}

	return c
}
