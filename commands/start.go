package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwestrom/tally/internal/core/event"
	"github.com/mwestrom/tally/internal/util"
)

var startCmd = &cobra.Command{
	Use:   "start <timer>",
	Short: "Start (or restart) a named timer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	st, err := eng.StartTimer(name)
	if err != nil {
		return err
	}

	normalized := event.Normalize(name)
	for _, t := range st.Timers {
		if t.Name == normalized {
			fmt.Printf("started %s (today: %s)\n", t.DisplayName, util.FormatElapsed(t.ElapsedToday))
			return nil
		}
	}
	fmt.Printf("started %s\n", name)
	return nil
}
