package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwestrom/tally/internal/core/event"
	"github.com/mwestrom/tally/internal/core/interval"
)

var testNow = time.Date(2026, 1, 7, 14, 30, 0, 0, time.UTC)

func ms(day, hour, min int) int64 {
	return time.Date(2026, 1, day, hour, min, 0, 0, time.UTC).UnixMilli()
}

func buildTimeline(t *testing.T, events []event.Event, now time.Time, date *time.Time) *Data {
	t.Helper()
	names := event.NewRegistry(nil)
	names.ObserveEvents(events)

	seen := make(map[string]bool)
	var colorOrder []string
	for _, e := range events {
		if e.Kind == event.KindStart && !seen[e.Timer] {
			seen[e.Timer] = true
			colorOrder = append(colorOrder, e.Timer)
		}
	}

	return Build(Input{
		Processed:  interval.Build(events),
		ColorOrder: colorOrder,
		Names:      names,
	}, now, date)
}

func TestBuildToday(t *testing.T) {
	events := []event.Event{
		event.Start(ms(7, 9, 15), "a"),
		event.Pause(ms(7, 10, 0), "a"),
		event.Start(ms(7, 10, 0), "b"),
		event.Pause(ms(7, 11, 30), "b"),
	}

	d := buildTimeline(t, events, testNow, nil)

	require.Len(t, d.Segments, 2)
	assert.Equal(t, "a", d.Segments[0].Timer)
	assert.Equal(t, ms(7, 9, 15), d.Segments[0].Start)
	assert.Equal(t, ms(7, 10, 0), d.Segments[0].End)
	assert.Equal(t, "b", d.Segments[1].Timer)

	// Window: hour of the first segment through the hour after now.
	assert.Equal(t, ms(7, 9, 0), d.DayStart)
	assert.Equal(t, ms(7, 15, 0), d.DayEnd)
}

func TestBuildIncludesActiveSpanToday(t *testing.T) {
	events := []event.Event{
		event.Start(ms(7, 13, 0), "a"),
	}

	d := buildTimeline(t, events, testNow, nil)

	require.Len(t, d.Segments, 1)
	assert.Equal(t, ms(7, 13, 0), d.Segments[0].Start)
	assert.Equal(t, testNow.UnixMilli(), d.Segments[0].End)
}

func TestBuildPastDayExcludesActiveSpan(t *testing.T) {
	events := []event.Event{
		// Completed yesterday.
		event.Start(ms(6, 9, 0), "a"),
		event.Pause(ms(6, 10, 20), "a"),
		// Still running now; must not appear on yesterday's timeline.
		event.Start(ms(7, 13, 0), "b"),
	}

	yesterday := time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC)
	d := buildTimeline(t, events, testNow, &yesterday)

	require.Len(t, d.Segments, 1)
	assert.Equal(t, "a", d.Segments[0].Timer)

	// Past-day window ends the hour after the last segment.
	assert.Equal(t, ms(6, 9, 0), d.DayStart)
	assert.Equal(t, ms(6, 11, 0), d.DayEnd)
}

func TestBuildClipsToDay(t *testing.T) {
	events := []event.Event{
		// Straddles midnight into the rendered day.
		event.Start(ms(6, 23, 30), "a"),
		event.Pause(ms(7, 0, 45), "a"),
	}

	d := buildTimeline(t, events, testNow, nil)

	require.Len(t, d.Segments, 1)
	assert.Equal(t, ms(7, 0, 0), d.Segments[0].Start)
	assert.Equal(t, ms(7, 0, 45), d.Segments[0].End)
}

func TestBuildEmptyDayFullWindow(t *testing.T) {
	d := buildTimeline(t, nil, testNow, nil)

	assert.Empty(t, d.Segments)
	assert.Equal(t, ms(7, 0, 0), d.DayStart)
	assert.Equal(t, ms(8, 0, 0), d.DayEnd)
}

func TestBuildSegmentsSortedByStart(t *testing.T) {
	events := []event.Event{
		event.Start(ms(7, 11, 0), "b"),
		event.Pause(ms(7, 12, 0), "b"),
		event.Start(ms(7, 9, 0), "a"),
		event.Pause(ms(7, 10, 0), "a"),
	}

	// Out-of-order construction still renders chronologically.
	p := interval.NewProcessed()
	for _, e := range events {
		p.Apply(e)
	}
	names := event.NewRegistry(nil)
	names.ObserveEvents(events)
	d := Build(Input{
		Processed:  p,
		ColorOrder: []string{"b", "a"},
		Names:      names,
	}, testNow, nil)

	require.Len(t, d.Segments, 2)
	assert.Equal(t, "a", d.Segments[0].Timer)
	assert.Equal(t, "b", d.Segments[1].Timer)
}

func TestBuildSegmentColors(t *testing.T) {
	events := []event.Event{
		event.Start(ms(7, 9, 0), "a"),
		event.Pause(ms(7, 10, 0), "a"),
		event.Start(ms(7, 10, 0), "b"),
		event.Pause(ms(7, 11, 0), "b"),
	}

	d := buildTimeline(t, events, testNow, nil)

	require.Len(t, d.Segments, 2)
	assert.Equal(t, "#4a9eff", d.Segments[0].Color)
	assert.Equal(t, "#4ade80", d.Segments[1].Color)
	assert.Equal(t, map[string]string{"a": "#4a9eff", "b": "#4ade80"}, d.TimerColors)
}
