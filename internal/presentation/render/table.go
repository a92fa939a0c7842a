package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mwestrom/tally/internal/core/state"
	"github.com/mwestrom/tally/internal/util"
)

// TimerTable renders the timer state as an aligned table with a totals
// footer.
func TimerTable(w io.Writer, st *state.TimerState, colorize bool) {
	headers := []string{"", "Timer", "Today", "Week", "Trend", ""}

	rows := make([][]string, 0, len(st.Timers))
	for _, t := range st.Timers {
		running := ""
		if t.IsRunning {
			running = "●"
		}
		rows = append(rows, []string{
			ansiSwatch(st.TimerColors[t.Name], colorize),
			t.DisplayName,
			util.FormatElapsed(t.ElapsedToday),
			util.FormatElapsed(t.WeeklyTotal),
			util.FormatTrend(t.WeeklyTrend),
			running,
		})
	}

	widths := columnWidths(headers, rows)
	printRow(w, headers, widths)
	printSeparator(w, widths)
	for _, row := range rows {
		printRow(w, row, widths)
	}
	printSeparator(w, widths)
	printRow(w, []string{"", "Total", util.FormatElapsed(st.TotalToday), "", util.FormatTrend(st.WeeklyTrend), ""}, widths)
}

// columnWidths sizes each column to its widest cell. The swatch and running
// markers carry ANSI escapes, so display width is measured on the bare
// marker instead.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func displayWidth(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

func printRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := widths[i] - displayWidth(cell)
		if pad < 0 {
			pad = 0
		}
		parts[i] = cell + strings.Repeat(" ", pad)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

func printSeparator(w io.Writer, widths []int) {
	total := 0
	for _, width := range widths {
		total += width + 2
	}
	if total > 2 {
		total -= 2
	}
	fmt.Fprintln(w, strings.Repeat("-", total))
}

// stripANSI removes escape sequences for width measurement.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
