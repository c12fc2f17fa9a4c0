package router

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dmingn/dtv-schedule-rss/internal/app/schedule"
)

// Schedule touches every channel on a fixed interval so expired cache slots
// are re-populated off the request path. Refresh failures are logged; the
// next round tries again.
func Schedule(ctx context.Context, chEntries []schedule.Entry, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("The cache refresh task has been stopped.")
				return
			case <-ticker.C:
				logger.Info("Start refreshing the schedule caches.")
				refreshAll(ctx, chEntries)
				logger.Info("The schedule caches have been refreshed.")
			}
		}
	}()
}

func refreshAll(ctx context.Context, chEntries []schedule.Entry) {
	for _, e := range chEntries {
		if _, err := e.Channel.FetchSchedule(ctx); err != nil {
			logger.Error("Failed to refresh the schedule.",
				zap.String("path", e.Path),
				zap.Error(err))
		}
	}
}
