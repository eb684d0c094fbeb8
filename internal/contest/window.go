package contest

import "time"

// DefaultWindowSpan is how far ahead contests are kept
const DefaultWindowSpan = 7 * 24 * time.Hour

// Window is a closed wall-clock interval [From, To]
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow returns the window starting at now and spanning the given duration.
// now is reduced to its wall-clock reading so it compares with source date-times.
func NewWindow(now time.Time, span time.Duration) Window {
	from := WallClock(now)
	return Window{From: from, To: from.Add(span)}
}

// Contains reports whether t lies inside the window, both bounds included
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Admits reports whether a source start time falls in the window.
// An unparsed start cannot be placed and is never admitted.
func (w Window) Admits(d DateTime) bool {
	return d.Parsed() && w.Contains(d.Time())
}

// Filter keeps the entries whose start the window admits, preserving order
func (w Window) Filter(entries []Entry) []Entry {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if w.Admits(e.Start) {
			kept = append(kept, e)
		}
	}
	return kept
}
