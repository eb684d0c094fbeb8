// Package cache holds the single most recent schedule produced by the aggregator.
//
// The cache has exactly one slot. It moves between three states:
//
//	Empty  -> Fresh  on Set
//	Fresh  -> Stale  once the TTL elapses
//	Stale  -> Fresh  on the next Set
//
// Get only answers while Fresh. GetStale answers in both Fresh and Stale and is
// what the aggregator falls back on when the upstream page cannot be fetched.
package cache

import (
	"sync"
	"time"

	"github.com/pfrederiksen/contest-digest/internal/contest"
)

// DefaultTTL is how long a stored schedule is served before a refresh is attempted
const DefaultTTL = time.Hour

// State describes the slot at a given instant
type State int

const (
	StateEmpty State = iota
	StateFresh
	StateStale
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	default:
		return "empty"
	}
}

// FreshnessCache stores one schedule together with its expiry
type FreshnessCache struct {
	mu       sync.RWMutex
	value    *contest.Schedule
	storedAt time.Time
	expires  time.Time
	now      func() time.Time
}

// New creates an empty cache using the wall clock.
func New() *FreshnessCache {
	return &FreshnessCache{now: time.Now}
}

// NewWithClock creates an empty cache reading time from now. Tests use this to step the clock.
func NewWithClock(now func() time.Time) *FreshnessCache {
	return &FreshnessCache{now: now}
}

// State reports whether the slot is empty, fresh or stale right now.
func (c *FreshnessCache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateLocked()
}

func (c *FreshnessCache) stateLocked() State {
	if c.value == nil {
		return StateEmpty
	}
	if c.now().After(c.expires) {
		return StateStale
	}
	return StateFresh
}

// Get returns the stored schedule only while it is fresh
func (c *FreshnessCache) Get() (*contest.Schedule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stateLocked() != StateFresh {
		return nil, false
	}
	return c.value, true
}

// GetStale returns the stored schedule regardless of expiry
func (c *FreshnessCache) GetStale() (*contest.Schedule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil {
		return nil, false
	}
	return c.value, true
}

// Set replaces the stored schedule and restarts its freshness clock. A non-positive ttl
// stores the value already expired, so only GetStale will return it.
func (c *FreshnessCache) Set(value *contest.Schedule, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.value = value
	c.storedAt = now
	if ttl <= 0 {
		c.expires = now.Add(-time.Nanosecond)
	} else {
		c.expires = now.Add(ttl)
	}
}

// Age returns how long ago the current value was stored, or zero when empty.
func (c *FreshnessCache) Age() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil {
		return 0
	}
	return c.now().Sub(c.storedAt)
}

// Clear drops the stored value.
func (c *FreshnessCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.storedAt = time.Time{}
	c.expires = time.Time{}
}
