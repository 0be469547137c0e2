package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toolrent-console/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// failed mutations were already reported as a notification
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

var (
	configPath string
	jsonOutput bool

	// a is the wired application, built before any subcommand runs
	a *app
)

var rootCmd = &cobra.Command{
	Use:           "toolrent",
	Short:         "ToolRent console",
	Long:          "Command line and local web console for the ToolRent rental service.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		a, err = newApp(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	// Session
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)

	// Catalog and rentals
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(bookingsCmd)

	// Reports
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(analyticsCmd)

	// Console and workers
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(jobsCmd)
}
