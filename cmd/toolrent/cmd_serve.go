package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "toolrent-console/internal/api/http"
	"toolrent-console/internal/config"
	"toolrent-console/internal/jobs"
	"toolrent-console/internal/logger"
	"toolrent-console/internal/scheduler"
	"toolrent-console/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var noScheduler bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web console and the scheduled jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		console, err := httpapi.NewServer(a.session, httpapi.Screens{
			Dashboard: a.dashboard,
			Analytics: a.analytics,
			Tools:     a.tools,
			Orders:    a.orders,
			Reviews:   a.reviews,
			Bookings:  a.bookings,
			Product:   a.product,
			Profile:   a.profile,
		}, a.feed, a.origin())
		if err != nil {
			return fmt.Errorf("failed to build console: %w", err)
		}
		if dir := a.cfg.Console.ImageCacheDir; dir != "" {
			images, err := storage.NewDiskStore(dir)
			if err != nil {
				return err
			}
			console.UseImageCache(images)
		}

		srv := &http.Server{
			Addr:              a.cfg.GetConsoleAddress(),
			Handler:           console.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		var cronScheduler *scheduler.Scheduler
		if !noScheduler {
			cronScheduler = scheduler.NewScheduler(jobs.NewJobRunner(a.bookings, a.cache, a.cfg))
			cronScheduler.Start()
		}

		serveErr := make(chan error, 1)
		go func() {
			logger.Info("Console listening", "address", srv.Addr, "api", a.cfg.API.BaseURL)
			serveErr <- srv.ListenAndServe()
		}()

		// Wait for interrupt signal
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case err := <-serveErr:
			if cronScheduler != nil {
				cronScheduler.Stop()
			}
			return fmt.Errorf("console stopped: %w", err)
		case <-sigChan:
		}

		// Graceful shutdown
		logger.Info("Shutting down console...")
		if cronScheduler != nil {
			cronScheduler.Stop()
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down console: %w", err)
		}
		if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("Console stopped. Goodbye!")
		return nil
	},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Run scheduled jobs by hand",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs and their schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := jobs.NewJobRunner(a.bookings, a.cache, a.cfg)
		schedules := map[string]string{
			jobs.CleanupExpiredBookingsJob: a.cfg.Scheduler.CleanupExpiredBookings,
			jobs.RefreshQueriesJob:         a.cfg.Scheduler.RefreshQueries,
		}
		rows := make([][]string, 0, len(schedules))
		for _, name := range runner.Names() {
			spec := schedules[name]
			if spec == "" {
				spec = config.ScheduleOff
			}
			rows = append(rows, []string{name, spec})
		}
		return table(cmd.OutOrStdout(), []string{"JOB", "SCHEDULE"}, rows)
	},
}

var jobsRunCmd = &cobra.Command{
	Use:   "run <job>",
	Short: "Run one job now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := jobs.NewJobRunner(a.bookings, a.cache, a.cfg).Run(args[0])
		if err != nil && !errors.Is(err, jobs.ErrUnknownJob) {
			// the cleanup notification already carries the failure
			return reported(err)
		}
		return err
	},
}

func init() {
	serveCmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Serve the console without scheduled jobs")

	jobsCmd.AddCommand(jobsListCmd, jobsRunCmd)
}
