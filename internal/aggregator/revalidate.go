package aggregator

import (
	"context"
	"time"

	"github.com/pfrederiksen/contest-digest/internal/logger"
)

// Revalidate refreshes the schedule every interval until ctx is cancelled.
// The first refresh happens immediately so the cache is warm before traffic arrives.
// Failures are logged and retried on the next tick; the stale entry keeps being served.
func (a *Aggregator) Revalidate(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := a.Refresh(ctx); err != nil {
			logger.Warn("Scheduled revalidation failed", logger.Fields{
				"interval": interval.String(),
				"error":    err.Error(),
			})
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
