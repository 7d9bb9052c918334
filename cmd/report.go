package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"timecard/internal/timecard"
)

var (
	reportYear  int
	reportMonth int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a monthly CSV report next to the log",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newTracker()
		if err != nil {
			return err
		}

		year, month := reportYear, reportMonth
		if year == 0 || month == 0 {
			now := time.Now()
			year, month = now.Year(), int(now.Month())
		}

		path, err := tr.ExportMonthlyReport(year, month)
		if err != nil {
			if errors.Is(err, timecard.ErrNoData) {
				cmd.Printf("no work data for %04d-%02d\n", year, month)
				return nil
			}
			return err
		}
		cmd.Printf("Report written: %s\n", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportYear, "year", 0, "report year (defaults to the current year)")
	reportCmd.Flags().IntVar(&reportMonth, "month", 0, "report month 1-12 (defaults to the current month)")
	rootCmd.AddCommand(reportCmd)
}
