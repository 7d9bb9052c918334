package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"timecard/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// runDashboard launches the Bubble Tea dashboard over the configured
// data directory. Also reached by running timecard with no arguments.
func runDashboard() error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("the dashboard needs an interactive terminal; see 'timecard --help' for the one-shot commands")
	}
	tr, err := newTracker()
	if err != nil {
		return err
	}
	return tui.Run(tr)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
