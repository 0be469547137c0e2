package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"toolrent-console/internal/config"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/logger"
	"toolrent-console/internal/metrics"
	"toolrent-console/internal/querycache"
)

// Job names, as used on the command line and in metrics
const (
	CleanupExpiredBookingsJob = "cleanup-expired-bookings"
	RefreshQueriesJob         = "refresh-queries"
)

// DefaultTimeout bounds a single job run
const DefaultTimeout = 30 * time.Second

var ErrUnknownJob = errors.New("unknown job")

// BookingCleaner expires stale pending bookings on the remote service
type BookingCleaner interface {
	CleanupExpired(ctx context.Context) (domain.CleanupResult, error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookings BookingCleaner
	cache    *querycache.Cache
	config   *config.Config
	timeout  time.Duration
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(bookings BookingCleaner, cache *querycache.Cache, cfg *config.Config) *JobRunner {
	return &JobRunner{
		bookings: bookings,
		cache:    cache,
		config:   cfg,
		timeout:  DefaultTimeout,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// Names lists the jobs Run accepts
func (jr *JobRunner) Names() []string {
	names := make([]string, 0, len(jr.registry()))
	for name := range jr.registry() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (jr *JobRunner) registry() map[string]func() error {
	return map[string]func() error{
		CleanupExpiredBookingsJob: jr.CleanupExpiredBookings,
		RefreshQueriesJob:         jr.RefreshQueries,
	}
}

// Run executes one job by name (for manual execution)
func (jr *JobRunner) Run(name string) error {
	job, ok := jr.registry()[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return job()
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		status := "success"
		if err != nil {
			status = "failure"
		}
		metrics.RecordJob(jobName, status, start)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	if err = jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
	return nil
}
