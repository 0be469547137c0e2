package jobs

import (
	"context"

	"toolrent-console/internal/logger"
)

// RefreshQueries drops every cached read so screens fetch fresh data
func (jr *JobRunner) RefreshQueries() error {
	return jr.runWithRecovery(RefreshQueriesJob, func(ctx context.Context) error {
		n := jr.cache.Len()
		jr.cache.InvalidateAll()
		logger.Info("Cached queries dropped", "count", n)
		return nil
	})
}
