package cmd

import (
	"github.com/spf13/cobra"
	"timecard/internal/timecard"
	"timecard/internal/tracker"
)

// The four punch commands share one shape: restore the session from the
// log, record the action (write-then-transition), and print the result.
// Recording is permissive: any action is accepted in any state, exactly
// as the log format allows.

var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in and start a work session",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := punch(timecard.ClockIn)
		if err != nil {
			return err
		}
		cmd.Printf("Clocked in at %s.\n", tr.ClockInAt().Format("15:04:05"))
		return nil
	},
}

var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Start a break",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := punch(timecard.BreakStart)
		if err != nil {
			return err
		}
		cmd.Printf("Break started. Worked %s so far.\n", timecard.FormatDuration(tr.Elapsed()))
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "End the current break and resume working",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := punch(timecard.BreakEnd)
		if err != nil {
			return err
		}
		cmd.Printf("Back to work. Breaks so far: %s.\n", timecard.FormatDuration(tr.BreakTotal()))
		return nil
	},
}

var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out and close the work session",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := punch(timecard.ClockOut)
		if err != nil {
			return err
		}
		cmd.Println("Clocked out.")

		// Summarize the closed day from the log itself.
		events, err := tr.Store().ReadAll()
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		today := events[len(events)-1].Date
		var dayEvents []timecard.Event
		for _, e := range events {
			if e.Date == today {
				dayEvents = append(dayEvents, e)
			}
		}
		if s, ok := timecard.SummarizeDay(today, dayEvents); ok {
			workStr := ""
			if s.WorkTotal != nil {
				workStr = ", worked " + timecard.FormatDuration(*s.WorkTotal)
			}
			cmd.Printf("Today: in %s, out %s, breaks %s%s.\n",
				s.ClockIn, s.ClockOut, timecard.FormatDuration(s.BreakTotal), workStr)
		}
		return nil
	},
}

// punch restores the live session, records one action, and returns the
// tracker for message rendering. A failed append leaves the session
// untouched and propagates the persistence error.
func punch(action timecard.Action) (*tracker.Tracker, error) {
	tr, err := newTracker()
	if err != nil {
		return nil, err
	}
	if err := tr.Restore(); err != nil {
		return nil, err
	}
	if err := tr.Apply(action); err != nil {
		return nil, err
	}
	return tr, nil
}

func init() {
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(breakCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(outCmd)
}
