package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Replace all settings and events from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false,
		"Skip the confirmation prompt")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if !importForce && !confirm("This will replace all your current data. Continue?") {
		fmt.Println("canceled")
		return nil
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	count, err := eng.Import(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("imported %d events from %s\n", count, args[0])
	return nil
}
