package scheduler

import (
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"toolrent-console/internal/config"
	"toolrent-console/internal/jobs"
	"toolrent-console/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	s.register(jobs.CleanupExpiredBookingsJob, cfg.CleanupExpiredBookings, func() {
		_ = s.jobs.CleanupExpiredBookings()
	})
	s.register(jobs.RefreshQueriesJob, cfg.RefreshQueries, func() {
		_ = s.jobs.RefreshQueries()
	})

	logger.Info("Cron jobs registered", "count", len(s.cron.Entries()))
}

// register adds one job. An empty or "off" spec leaves the job disabled.
func (s *Scheduler) register(name, spec string, fn func()) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, config.ScheduleOff) {
		logger.Info("Cron job disabled", "job", name)
		return
	}
	if _, err := s.cron.AddFunc(spec, fn); err != nil {
		logger.Error("Failed to register job", "job", name, "spec", spec, "error", err)
	}
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has any job registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
