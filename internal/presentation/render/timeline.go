package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/mwestrom/tally/internal/core/timeline"
	"github.com/mwestrom/tally/internal/util"
)

// Timeline renders a day's segments as a horizontal bar scaled to width
// columns, followed by a numbered segment list and a color legend.
func Timeline(w io.Writer, data *timeline.Data, loc *time.Location, width int, colorize bool) {
	if width < 20 {
		width = 20
	}

	span := data.DayEnd - data.DayStart
	if span <= 0 {
		fmt.Fprintln(w, "(empty timeline)")
		return
	}

	fmt.Fprintf(w, "%s - %s\n",
		util.FormatClock(data.DayStart, loc), util.FormatClock(data.DayEnd, loc))

	// Paint segments onto a column raster; later segments win a contested
	// cell, matching their position in start order.
	cells := make([]string, width)
	for _, seg := range data.Segments {
		from := int((seg.Start - data.DayStart) * int64(width) / span)
		to := int((seg.End - data.DayStart) * int64(width) / span)
		if to <= from {
			to = from + 1
		}
		for i := from; i < to && i < width; i++ {
			cells[i] = seg.Color
		}
	}

	var bar strings.Builder
	for _, color := range cells {
		if color == "" {
			bar.WriteString("·")
		} else {
			bar.WriteString(ansiBlock(color, " ", colorize))
		}
	}
	fmt.Fprintln(w, bar.String())

	if len(data.Segments) == 0 {
		fmt.Fprintln(w, "(no activity)")
		return
	}

	for i, seg := range data.Segments {
		fmt.Fprintf(w, "%2d. %s %s  %s - %s  (%s)\n",
			i+1,
			ansiSwatch(seg.Color, colorize),
			padName(seg.DisplayName, 20),
			util.FormatClock(seg.Start, loc),
			util.FormatClock(seg.End, loc),
			util.FormatElapsed(seg.End-seg.Start),
		)
	}

	legend(w, data.TimerColors, colorize)
}

func legend(w io.Writer, colors map[string]string, colorize bool) {
	if len(colors) == 0 {
		return
	}
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", ansiSwatch(colors[name], colorize), name))
	}
	fmt.Fprintln(w, strings.Join(parts, "   "))
}

func padName(name string, width int) string {
	if runewidth.StringWidth(name) > width {
		return runewidth.Truncate(name, width, "…")
	}
	return runewidth.FillRight(name, width)
}
