package jobs

import (
	"context"

	"toolrent-console/internal/logger"
)

// CleanupExpiredBookings asks the remote service to expire pending bookings
// whose hold has lapsed
func (jr *JobRunner) CleanupExpiredBookings() error {
	return jr.runWithRecovery(CleanupExpiredBookingsJob, func(ctx context.Context) error {
		result, err := jr.bookings.CleanupExpired(ctx)
		if err != nil {
			return err
		}
		logger.Info("Expired bookings cleaned up", "count", result.ExpiredCount, "message", result.Message)
		return nil
	})
}
