// Package aggregator runs the fetch, parse, filter and assemble pipeline and keeps its
// result in a FreshnessCache. It is the only package that decides when the upstream page
// is fetched and what a caller receives when that fails.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pfrederiksen/contest-digest/internal/cache"
	"github.com/pfrederiksen/contest-digest/internal/contest"
	"github.com/pfrederiksen/contest-digest/internal/logger"
	"github.com/pfrederiksen/contest-digest/internal/scraper"
)

// Fetcher retrieves the raw source page
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
	URL() string
}

const runKey = "schedule"

// Aggregator produces the current schedule, serving the cache while it is fresh
type Aggregator struct {
	fetcher Fetcher
	cache   *cache.FreshnessCache

	ttl      time.Duration
	span     time.Duration
	location *time.Location
	policy   contest.Policy
	now      func() time.Time

	group singleflight.Group
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithTTL sets how long a successful run stays fresh
func WithTTL(ttl time.Duration) Option {
	return func(a *Aggregator) { a.ttl = ttl }
}

// WithWindow sets how far ahead contests are kept
func WithWindow(span time.Duration) Option {
	return func(a *Aggregator) { a.span = span }
}

// WithLocation sets the zone whose wall clock source date-times are written in
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.location = loc
		}
	}
}

// WithPolicy sets the display-format table
func WithPolicy(p contest.Policy) Option {
	return func(a *Aggregator) { a.policy = p }
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New creates an aggregator reading from f and storing results in c.
// A nil cache gets a fresh one on the wall clock.
func New(f Fetcher, c *cache.FreshnessCache, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher:  f,
		cache:    c,
		ttl:      cache.DefaultTTL,
		span:     contest.DefaultWindowSpan,
		location: time.Local,
		policy:   contest.DefaultPolicy,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache == nil {
		a.cache = cache.NewWithClock(a.now)
	}
	return a
}

// Cache exposes the underlying cache, mainly for health reporting
func (a *Aggregator) Cache() *cache.FreshnessCache {
	return a.cache
}

// Current returns the cached schedule while fresh, otherwise runs the pipeline.
//
// When the run fails and an earlier result exists, that result is returned with its
// Error set and a nil error. When nothing was ever cached, the returned schedule has
// three empty lists and the error is returned alongside it.
func (a *Aggregator) Current(ctx context.Context) (*contest.Schedule, error) {
	if s, ok := a.cache.Get(); ok {
		logger.IncrCounter("cache.hits")
		return s, nil
	}
	return a.do(ctx, false)
}

// Refresh runs the pipeline even when the cache is fresh. Scheduled revalidation uses this.
func (a *Aggregator) Refresh(ctx context.Context) (*contest.Schedule, error) {
	return a.do(ctx, true)
}

type result struct {
	schedule *contest.Schedule
	err      error
}

// do runs the pipeline once for every caller waiting on it. The run is detached from the
// starting caller's cancellation; the scraper timeout still bounds the fetch.
func (a *Aggregator) do(ctx context.Context, force bool) (*contest.Schedule, error) {
	runCtx := context.WithoutCancel(ctx)
	v, _, _ := a.group.Do(runKey, func() (interface{}, error) {
		// another caller may have finished a run while this one waited
		if !force {
			if s, ok := a.cache.Get(); ok {
				logger.IncrCounter("cache.hits")
				return result{schedule: s}, nil
			}
		}
		s, err := a.run(runCtx)
		return result{schedule: s, err: err}, nil
	})

	r := v.(result)
	return r.schedule, r.err
}

func (a *Aggregator) run(ctx context.Context) (*contest.Schedule, error) {
	logger.IncrCounter("pipeline.runs")
	started := time.Now()

	body, err := a.fetcher.Fetch(ctx)
	if err != nil {
		return a.fail(err)
	}

	page, err := scraper.Parse(strings.NewReader(body), a.fetcher.URL())
	if err != nil {
		return a.fail(err)
	}

	now := a.now()
	window := contest.NewWindow(now.In(a.location), a.span)
	schedule := Assemble(page, window, a.policy, now)

	a.cache.Set(schedule, a.ttl)

	logger.RecordTiming("pipeline.duration", time.Since(started))
	logger.SetGauge("schedule.contests", float64(schedule.Len()))
	logger.Info("Schedule refreshed", logger.Fields{
		"codeforces": len(schedule.Codeforces),
		"atcoder":    len(schedule.AtCoder),
		"luogu":      len(schedule.Luogu),
		"window_to":  window.To.Format(contest.CanonicalLayout),
	})

	return schedule, nil
}

func (a *Aggregator) fail(err error) (*contest.Schedule, error) {
	logger.IncrCounter("pipeline.failures")

	if stale, ok := a.cache.GetStale(); ok {
		logger.IncrCounter("cache.stale_serves")
		logger.Warn("Serving stale schedule", logger.Fields{
			"last_updated": stale.LastUpdated.Format(time.RFC3339),
			"age":          a.cache.Age().String(),
			"error":        err.Error(),
		})
		return stale.WithError(fmt.Sprintf("using cached data due to %s: %v", failureKind(err), err)), nil
	}

	logger.Error("Aggregation failed with no cached schedule", nil, err)
	return contest.NewSchedule(a.now()).WithError(err.Error()), err
}

// failureKind names the stage that failed, for the stale-serve message
func failureKind(err error) string {
	if errors.Is(err, scraper.ErrParse) {
		return "parse error"
	}
	return "fetch error"
}

// Assemble filters each platform's entries through the window and renders the survivors.
// IDs are numbered from zero per platform, in source order, after filtering.
func Assemble(page scraper.Page, window contest.Window, policy contest.Policy, lastUpdated time.Time) *contest.Schedule {
	schedule := contest.NewSchedule(lastUpdated)

	for _, platform := range contest.Platforms {
		kept := window.Filter(page[platform])
		list := make([]contest.Contest, 0, len(kept))
		for i, entry := range kept {
			list = append(list, policy.Render(entry, i))
		}

		switch platform {
		case contest.Codeforces:
			schedule.Codeforces = list
		case contest.AtCoder:
			schedule.AtCoder = list
		case contest.Luogu:
			schedule.Luogu = list
		}
	}

	return schedule
}
