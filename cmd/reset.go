package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the punch log (irreversible)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("deleting the log is irreversible; pass --yes to confirm")
		}
		tr, err := newTracker()
		if err != nil {
			return err
		}
		if err := tr.DeleteLog(); err != nil {
			return err
		}
		cmd.Println("Punch log deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deletion of the punch log")
	rootCmd.AddCommand(resetCmd)
}
