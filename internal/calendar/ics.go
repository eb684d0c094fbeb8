// Package calendar exports a schedule as an iCalendar feed so contests can be
// subscribed to from a phone or desktop calendar.
package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/pfrederiksen/contest-digest/internal/contest"
)

const (
	productID = "-//Contest Digest//contest-digest//EN"
	calName   = "Upcoming programming contests"

	// DefaultLength is used when a contest has no known end
	DefaultLength = 2 * time.Hour
)

// uidNamespace scopes the name-based UUIDs given to calendar events
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pfrederiksen/contest-digest"))

// Options controls how wall-clock source times become calendar instants
type Options struct {
	// Location is the zone the source page's times are written in
	Location *time.Location
	// DefaultLength is the event length when a contest has no end
	DefaultLength time.Duration
	// Stamp is written as DTSTAMP; zero means time.Now
	Stamp time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.DefaultLength <= 0 {
		o.DefaultLength = DefaultLength
	}
	if o.Stamp.IsZero() {
		o.Stamp = time.Now()
	}
	return o
}

// UID derives a stable identifier from platform, name and start so that a contest keeps
// its UID between runs even though its list position (and ID) may change.
func UID(c contest.Contest) string {
	key := fmt.Sprintf("%s|%s|%s", c.Platform, c.Name, c.Start.Raw())
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@contest-digest"
}

// Generate builds an iCalendar document for every contest whose start was parsed.
// Contests with an unparseable start are left out because they cannot be placed.
func Generate(s *contest.Schedule, opts Options) string {
	opts = opts.withDefaults()

	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetName(calName)
	cal.SetXWRCalName(calName)

	for _, p := range contest.Platforms {
		for _, c := range s.List(p) {
			addEvent(cal, c, opts)
		}
	}

	return cal.Serialize()
}

func addEvent(cal *ics.Calendar, c contest.Contest, opts Options) {
	if !c.Start.Parsed() {
		return
	}

	start := c.Start.In(opts.Location)
	end := start.Add(opts.DefaultLength)
	if c.End.Parsed() {
		if e := c.End.In(opts.Location); e.After(start) {
			end = e
		}
	}

	ev := cal.AddEvent(UID(c))
	ev.SetDtStampTime(opts.Stamp)
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(fmt.Sprintf("[%s] %s", c.Platform, c.Name))
	ev.SetDescription(describe(c))
	ev.SetProperty(ics.ComponentPropertyCategories, string(c.Platform))
	ev.SetProperty(ics.ComponentPropertyStatus, "CONFIRMED")
	if c.URL != "" {
		ev.SetURL(c.URL)
	}
}

func describe(c contest.Contest) string {
	desc := fmt.Sprintf("%s: %s", c.Platform, c.StartTime)
	if c.EndTime != "" && c.Platform != contest.Luogu {
		desc += " - " + c.EndTime
	}
	if c.Type != "" {
		desc += "\nType: " + c.Type
	}
	if c.URL != "" {
		desc += "\n" + c.URL
	}
	return desc
}
