package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <timer> <new name>",
	Short: "Set a friendly display name for a timer",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	if _, err := eng.RenameTimer(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("renamed %s to %q\n", args[0], args[1])
	return nil
}
