package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <timer>",
	Short: "Delete a timer and purge its history from the log",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false,
		"Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if !deleteForce && !confirm(fmt.Sprintf("Delete timer %q and all its recorded time?", args[0])) {
		fmt.Println("canceled")
		return nil
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	if _, err := eng.DeleteTimer(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}
