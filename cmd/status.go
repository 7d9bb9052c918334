package cmd

import (
	"github.com/spf13/cobra"
	"timecard/internal/timecard"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newTracker()
		if err != nil {
			return err
		}
		if err := tr.Restore(); err != nil {
			return err
		}

		if tr.State() == timecard.Idle {
			cmd.Println("not clocked in")
			return nil
		}

		cmd.Printf("State: %s\n", tr.State())
		cmd.Printf("Clocked in: %s\n", tr.ClockInAt().Format("2006/01/02 15:04:05"))
		cmd.Printf("Worked: %s\n", timecard.FormatDuration(tr.Elapsed()))
		cmd.Printf("Breaks: %s\n", timecard.FormatDuration(tr.BreakTotal()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
