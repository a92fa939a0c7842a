package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwestrom/tally/internal/core/state"
)

func TestTimerTablePlain(t *testing.T) {
	st := &state.TimerState{
		Timers: []state.TimerInfo{
			{Name: "writing", DisplayName: "Writing", ElapsedToday: 2*3_600_000 + 15*60_000, IsRunning: true, WeeklyTotal: 5 * 3_600_000, WeeklyTrend: 12},
			{Name: "email", DisplayName: "Email", ElapsedToday: 15 * 60_000, WeeklyTotal: 60_000, WeeklyTrend: -40},
		},
		RunningTimers: []string{"writing"},
		TotalToday:    2*3_600_000 + 30*60_000,
		WeeklyTrend:   5,
		TimerColors:   map[string]string{"writing": "#4a9eff", "email": "#4ade80"},
	}

	var buf strings.Builder
	TimerTable(&buf, st, false)
	out := buf.String()

	assert.Contains(t, out, "Timer")
	assert.Contains(t, out, "Writing")
	assert.Contains(t, out, "2h 15m")
	assert.Contains(t, out, "+12%")
	assert.Contains(t, out, "-40%")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "2h 30m")
	// Color disabled: no escape codes anywhere.
	assert.NotContains(t, out, "\x1b[")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header, separator, two rows, separator, totals.
	require.Len(t, lines, 6)
}

func TestTimerTableColorized(t *testing.T) {
	st := &state.TimerState{
		Timers: []state.TimerInfo{
			{Name: "a", DisplayName: "a", ElapsedToday: 60_000},
		},
		TimerColors: map[string]string{"a": "#4a9eff"},
	}

	var buf strings.Builder
	TimerTable(&buf, st, true)
	assert.Contains(t, buf.String(), "\x1b[38;2;74;158;255m")
}

func TestStripANSI(t *testing.T) {
	colored := ansiBlock("#4a9eff", "abc", true)
	assert.Equal(t, "abc", stripANSI(colored))
	assert.Equal(t, "plain", stripANSI("plain"))
	assert.Equal(t, 3, displayWidth(colored))
}

func TestParseHex(t *testing.T) {
	r, g, b, ok := parseHex("#4a9eff")
	assert.True(t, ok)
	assert.Equal(t, []int64{0x4a, 0x9e, 0xff}, []int64{r, g, b})

	_, _, _, ok = parseHex("4a9eff")
	assert.False(t, ok)
	_, _, _, ok = parseHex("#zzzzzz")
	assert.False(t, ok)
	_, _, _, ok = parseHex("#fff")
	assert.False(t, ok)
}

func TestColumnsAlign(t *testing.T) {
	st := &state.TimerState{
		Timers: []state.TimerInfo{
			{Name: "long", DisplayName: "A Rather Long Name", ElapsedToday: 60_000},
			{Name: "s", DisplayName: "S", ElapsedToday: 60_000},
		},
		TimerColors: map[string]string{},
	}

	var buf strings.Builder
	TimerTable(&buf, st, false)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	// Every data row starts its Today column at the same offset.
	first := strings.Index(lines[2], "1m")
	second := strings.Index(lines[3], "1m")
	assert.Equal(t, first, second)
}
