package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwestrom/tally/internal/util"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export settings and the full event log to a backup file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	path := fmt.Sprintf("tally-backup-%s.json", util.GetTimeProvider().Now().Format("2006-01-02"))
	if len(args) == 1 {
		path = args[0]
	}

	id, err := eng.Export(path)
	if err != nil {
		return err
	}
	fmt.Printf("exported to %s (backup id %s)\n", path, id)
	return nil
}
