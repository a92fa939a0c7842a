package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mwestrom/tally/internal/presentation/render"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-timer totals for today and the weekly trend",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table",
		"Output format (table, json)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	st, err := eng.TimerState()
	if err != nil {
		return err
	}

	switch statusOutput {
	case "json":
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "table":
		render.TimerTable(os.Stdout, st, term.IsTerminal(int(os.Stdout.Fd())))
	default:
		return fmt.Errorf("unknown output format: %s", statusOutput)
	}
	return nil
}
