package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"timecard/internal/config"
	"timecard/internal/timecard"
	"timecard/internal/tracker"
)

// cfg holds the loaded configuration, populated in PersistentPreRunE.
var cfg config.Config

// dataDirFlag overrides the data directory from the command line.
var dataDirFlag string

var rootCmd = &cobra.Command{
	Use:   "timecard",
	Short: "Punch-clock work tracking over an append-only CSV log",
	Long: `timecard records clock-in, break, and clock-out punches to an
append-only CSV log, reconstructs the current session from that log,
and exports per-day monthly reports.

Run without arguments to open the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// dataDir resolves the data directory: flag, then config file, then the
// default under the user's documents area.
func dataDir() (string, error) {
	if dataDirFlag != "" {
		return dataDirFlag, nil
	}
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	return timecard.DefaultDir()
}

// newTracker builds a tracker over the configured data directory.
func newTracker() (*tracker.Tracker, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return tracker.New(timecard.NewStore(dir)), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "",
		"directory holding log.csv and exported reports (overrides config)")
}
