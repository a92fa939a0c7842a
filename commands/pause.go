package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwestrom/tally/internal/util"
)

var pauseAllFlag bool

var pauseCmd = &cobra.Command{
	Use:   "pause [timer]",
	Short: "Pause one timer, or everything with --all",
	RunE:  runPause,
}

func init() {
	pauseCmd.Flags().BoolVar(&pauseAllFlag, "all", false, "Pause every running timer")
	rootCmd.AddCommand(pauseCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	if !pauseAllFlag && len(args) == 0 {
		return fmt.Errorf("specify a timer name or --all")
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	if pauseAllFlag {
		st, err := eng.PauseAllTimers()
		if err != nil {
			return err
		}
		fmt.Printf("all timers paused (today: %s)\n", util.FormatElapsed(st.TotalToday))
		return nil
	}

	name := strings.Join(args, " ")
	st, err := eng.PauseTimer(name)
	if err != nil {
		return err
	}
	fmt.Printf("paused %s (today: %s)\n", name, util.FormatElapsed(st.TotalToday))
	return nil
}
