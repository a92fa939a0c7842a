package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mwestrom/tally/internal/core/cache"
	"github.com/mwestrom/tally/internal/data/store"
	"github.com/mwestrom/tally/internal/util"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live once-per-second view of the running timer",
	Long: `watch renders a single ticking line with the primary running timer and its
elapsed time today. Each tick extrapolates from a cached snapshot instead of
recomputing state, and external changes to the event log are picked up
automatically.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	watcher, err := store.NewWatcher(eng.EventsPath())
	if err != nil {
		return fmt.Errorf("failed to watch event log: %w", err)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := util.GetTimeProvider()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		snap, err := eng.TraySnapshot()
		if err != nil {
			return err
		}
		printWatchLine(watchLine(snap, provider.Now()))

		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-watcher.Changes():
			// Another process rewrote the log; the cached tiers are stale.
			eng.Reload()
		case <-ticker.C:
		}
	}
}

func watchLine(snap *cache.TraySnapshot, now time.Time) string {
	switch len(snap.RunningTimers) {
	case 0:
		return "no timer running"
	case 1:
		line := fmt.Sprintf("● %s  %s", snap.PrimaryDisplayName, util.FormatTicking(snap.PrimaryElapsed(now)))
		if snap.TrayIconIndex != nil {
			line += fmt.Sprintf("  [#%d]", *snap.TrayIconIndex)
		}
		return line
	default:
		return fmt.Sprintf("● %d timers running  %s %s",
			len(snap.RunningTimers), snap.PrimaryDisplayName, util.FormatTicking(snap.PrimaryElapsed(now)))
	}
}

func printWatchLine(line string) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	line = runewidth.Truncate(line, width-1, "…")
	pad := width - 1 - runewidth.StringWidth(line)
	if pad < 0 {
		pad = 0
	}
	fmt.Printf("\r%s%s", line, strings.Repeat(" ", pad))
}
