package timeline

import (
	"sort"
	"time"

	"github.com/mwestrom/tally/internal/core/clock"
	"github.com/mwestrom/tally/internal/core/event"
	"github.com/mwestrom/tally/internal/core/interval"
	"github.com/mwestrom/tally/internal/core/state"
)

// Segment is one renderable span of a day's timeline, clipped to the
// logical day and color-coded by timer.
type Segment struct {
	Timer       string `json:"timer"`
	DisplayName string `json:"displayName"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Color       string `json:"color"`
}

// Data is a day's renderable timeline. DayStart/DayEnd are the effective
// display window, trimmed to the hours that actually saw activity; segments
// are sorted by start time.
type Data struct {
	DayStart    int64             `json:"dayStart"`
	DayEnd      int64             `json:"dayEnd"`
	Segments    []Segment         `json:"segments"`
	TimerColors map[string]string `json:"timerColors"`
}

// Input bundles what Build needs. Build is pure; the cache layer owns the
// Processed view and color order.
type Input struct {
	Processed      *interval.Processed
	ColorOrder     []string
	Names          *event.Registry
	DayStartHour   int
	DayStartMinute int
}

// Build renders the timeline of the logical day containing date, or of
// today when date is nil. Active timers contribute a span clipped at now,
// but only when the rendered day is today.
func Build(in Input, now time.Time, date *time.Time) *Data {
	nowMs := now.UnixMilli()

	target := now
	if date != nil {
		target = date.In(now.Location())
	}
	dayStart := clock.DayStart(target, in.DayStartHour, in.DayStartMinute)
	dayEnd := clock.DayEnd(dayStart)
	dayStartMs := dayStart.UnixMilli()
	dayEndMs := dayEnd.UnixMilli()
	isToday := date == nil || (dayStartMs <= nowMs && nowMs < dayEndMs)

	p := in.Processed
	segments := make([]Segment, 0)

	for timer, ivs := range p.Intervals {
		for _, iv := range ivs {
			if interval.Overlap(iv.Start, iv.End, dayStartMs, dayEndMs) > 0 {
				segments = append(segments, Segment{
					Timer:       timer,
					DisplayName: in.Names.DisplayName(timer),
					Start:       max(iv.Start, dayStartMs),
					End:         min(iv.End, dayEndMs),
					Color:       state.TimerColor(timer, in.ColorOrder),
				})
			}
		}
	}

	if isToday {
		for timer, start := range p.Active {
			if interval.Overlap(start, nowMs, dayStartMs, dayEndMs) > 0 {
				segments = append(segments, Segment{
					Timer:       timer,
					DisplayName: in.Names.DisplayName(timer),
					Start:       max(start, dayStartMs),
					End:         min(nowMs, dayEndMs),
					Color:       state.TimerColor(timer, in.ColorOrder),
				})
			}
		}
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})

	effectiveStart, effectiveEnd := displayWindow(segments, dayStartMs, dayEndMs, now, isToday)

	return &Data{
		DayStart:    effectiveStart,
		DayEnd:      effectiveEnd,
		Segments:    segments,
		TimerColors: state.PaletteColors(in.ColorOrder),
	}
}

// displayWindow trims the rendered window to the hours with activity: from
// the hour of the first segment to the hour after now (today) or after the
// last segment (past days), capped at the day range. A degenerate window
// falls back to the full day.
func displayWindow(segments []Segment, dayStartMs, dayEndMs int64, now time.Time, isToday bool) (int64, int64) {
	if len(segments) == 0 {
		return dayStartMs, dayEndMs
	}

	loc := now.Location()
	effectiveStart := clock.FloorHour(time.UnixMilli(segments[0].Start).In(loc)).UnixMilli()

	var effectiveEnd int64
	if isToday {
		effectiveEnd = min(clock.NextHour(now).UnixMilli(), dayEndMs)
	} else {
		lastEnd := time.UnixMilli(segments[len(segments)-1].End).In(loc)
		effectiveEnd = min(clock.NextHour(lastEnd).UnixMilli(), dayEndMs)
	}

	if effectiveEnd <= effectiveStart {
		return dayStartMs, dayEndMs
	}
	return effectiveStart, effectiveEnd
}
