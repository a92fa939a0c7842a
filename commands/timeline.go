package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mwestrom/tally/internal/presentation/render"
	"github.com/mwestrom/tally/internal/util"
)

var timelineDate string

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Render the activity timeline for a day",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().StringVar(&timelineDate, "date", "",
		"Day to render (YYYY-MM-DD); defaults to today")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	date, err := parseDateFlag(timelineDate)
	if err != nil {
		return err
	}

	data, err := eng.Timeline(date)
	if err != nil {
		return err
	}

	width := 72
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 8 {
			width = w - 2
		}
	}

	loc := util.GetTimeProvider().Location()
	render.Timeline(os.Stdout, data, loc, width, isTTY)
	return nil
}

// parseDateFlag interprets a YYYY-MM-DD flag in the configured timezone.
// The instant handed to the timeline builder is noon of that date, so the
// logical day resolves to the named date for morning day-start settings.
func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	loc := util.GetTimeProvider().Location()
	day, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	noon := day.Add(12 * time.Hour)
	return &noon, nil
}
