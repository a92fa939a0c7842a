package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	RunE:  runConfigShow,
}

var configDayStartCmd = &cobra.Command{
	Use:   "day-start <HH:MM>",
	Short: "Set the logical day boundary (e.g. 06:00 for shift workers)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigDayStart,
}

var configPauseOthersCmd = &cobra.Command{
	Use:   "pause-others <on|off>",
	Short: "Whether starting a timer pauses the rest",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigPauseOthers,
}

var configOrderCmd = &cobra.Command{
	Use:   "order <timer>...",
	Short: "Set the explicit timer display order",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConfigOrder,
}

func init() {
	configCmd.AddCommand(configDayStartCmd, configPauseOthersCmd, configOrderCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(eng.Settings(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runConfigDayStart(cmd *cobra.Command, args []string) error {
	parts := strings.SplitN(args[0], ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected HH:MM, got %q", args[0])
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("invalid hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid minute %q", parts[1])
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}
	if err := eng.UpdateDayStart(hour, minute); err != nil {
		return err
	}
	fmt.Printf("day start set to %02d:%02d\n", hour, minute)
	return nil
}

func runConfigPauseOthers(cmd *cobra.Command, args []string) error {
	var on bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		on = true
	case "off", "false", "no":
		on = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}
	if err := eng.UpdatePauseOthers(on); err != nil {
		return err
	}
	fmt.Printf("pause-others set to %v\n", on)
	return nil
}

func runConfigOrder(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	if err := eng.UpdateTimerOrder(args); err != nil {
		return err
	}
	fmt.Printf("timer order set to %s\n", strings.Join(args, ", "))
	return nil
}
