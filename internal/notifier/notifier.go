package notifier

import (
	"context"

	"github.com/pfrederiksen/contest-digest/internal/contest"
)

// Notifier defines the interface for posting a schedule digest
type Notifier interface {
	// Notify posts the digest of s
	Notify(ctx context.Context, s *contest.Schedule) error
}
