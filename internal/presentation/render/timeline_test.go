package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwestrom/tally/internal/core/timeline"
)

func renderTestData() *timeline.Data {
	dayStart := time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC).UnixMilli()
	return &timeline.Data{
		DayStart: dayStart,
		DayEnd:   dayStart + 4*3_600_000,
		Segments: []timeline.Segment{
			{Timer: "a", DisplayName: "Writing", Start: dayStart, End: dayStart + 3_600_000, Color: "#4a9eff"},
			{Timer: "b", DisplayName: "Email", Start: dayStart + 2*3_600_000, End: dayStart + 2*3_600_000 + 30*60_000, Color: "#4ade80"},
		},
		TimerColors: map[string]string{"a": "#4a9eff", "b": "#4ade80"},
	}
}

func TestTimelineRender(t *testing.T) {
	var buf strings.Builder
	Timeline(&buf, renderTestData(), time.UTC, 40, false)
	out := buf.String()

	assert.Contains(t, out, "09:00 - 13:00")
	assert.Contains(t, out, " 1. ")
	assert.Contains(t, out, "Writing")
	assert.Contains(t, out, "09:00 - 10:00")
	assert.Contains(t, out, "(1h 0m)")
	assert.Contains(t, out, "Email")
	assert.Contains(t, out, "11:00 - 11:30")
	assert.Contains(t, out, "(30m)")

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	// Second line is the bar raster at the requested width.
	bar := []rune(lines[1])
	assert.Len(t, bar, 40)
	// Gaps render as dots.
	assert.Contains(t, lines[1], "·")
}

func TestTimelineEmpty(t *testing.T) {
	d := renderTestData()
	d.Segments = nil

	var buf strings.Builder
	Timeline(&buf, d, time.UTC, 40, false)
	assert.Contains(t, buf.String(), "(no activity)")
}

func TestTimelineDegenerateWindow(t *testing.T) {
	d := renderTestData()
	d.DayEnd = d.DayStart

	var buf strings.Builder
	Timeline(&buf, d, time.UTC, 40, false)
	assert.Contains(t, buf.String(), "(empty timeline)")
}

func TestPadName(t *testing.T) {
	assert.Equal(t, "ab        ", padName("ab", 10))
	assert.Equal(t, 10, len([]rune(padName("a long name indeed", 10))))
	assert.True(t, strings.HasSuffix(padName("a long name indeed", 10), "…"))
}
