package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwestrom/tally/internal/app"
	"github.com/mwestrom/tally/internal/config"
	"github.com/mwestrom/tally/internal/data/store"
	"github.com/mwestrom/tally/internal/util"
)

var (
	// System and debugging
	debug bool

	// Data path
	dataDir string

	// Output related
	timezone string

	rootCmd = &cobra.Command{
		Use:   "tally",
		Short: "Event-sourced desktop time tracker",
		Long: `tally records start/pause events for named timers in an append-only log
and derives all statistics from it: today's totals, weekly trends, and a
per-day timeline.

Examples:
  tally start writing                 # start (or restart) the "writing" timer
  tally pause writing                 # pause one timer
  tally pause --all                   # pause everything
  tally status                        # today's totals and weekly trend
  tally timeline --date 2026-08-28    # timeline of a past day
  tally watch                         # live ticking view of the running timer`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

const (
	defaultDataDir = "~/.tally"
	settingsName   = "settings.json"
	defaultLogFile = "logs/tally.log"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir,
		"Data directory holding settings, the event log, and logs")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone override (e.g. UTC, Europe/Stockholm); defaults to the settings value")
}

func Execute() error {
	return rootCmd.Execute()
}

// newEngine loads settings, initializes logging and the time provider, and
// wires the engine over the event log in the data directory.
func newEngine() (*app.Engine, error) {
	dir := expandPath(dataDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	util.InitLogger(logLevel, filepath.Join(dir, defaultLogFile), debug)

	cfgPath := filepath.Join(dir, settingsName)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		// A corrupt settings file must not lock the user out of their data.
		util.LogWarnf("failed to load settings, using defaults: %v", err)
		cfg = config.Default()
	}

	tz := timezone
	if tz == "" {
		tz = cfg.Timezone
	}
	if err := util.InitializeTimeProvider(tz); err != nil {
		return nil, err
	}

	eng := app.NewEngine(cfg, cfgPath, store.NewFileStore(cfg.EventsPath(dir)))
	eng.SetClock(util.GetTimeProvider().Now)
	return eng, nil
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
