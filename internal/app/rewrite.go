package app

import (
	"math"
	"sort"

	"github.com/mwestrom/tally/internal/core/event"
	"github.com/mwestrom/tally/internal/core/interval"
)

// removeSegment rewrites a log so that the timer was not running during
// [segStart,segEnd). The segment must map onto one logged interval of the
// timer (completed or still open). When the segment is a clipped portion of
// a longer interval, the remainder is preserved: the part before the
// segment is closed with a pause at segStart, and the part after resumes
// with a start at segEnd.
func removeSegment(events []event.Event, timer string, segStart, segEnd int64) ([]event.Event, bool) {
	startIdx, closeIdx, startTs, closeTs, found := findSegmentPair(events, timer, segStart, segEnd)
	if !found {
		return events, false
	}

	out := make([]event.Event, 0, len(events)+2)
	for i, e := range events {
		switch i {
		case startIdx:
			if startTs < segStart {
				out = append(out, e, event.Pause(segStart, timer))
			}
		case closeIdx:
			if e.Kind == event.KindPauseAll {
				// A pause_all closes other timers too, so the record itself
				// always survives.
				if closeTs > segEnd {
					out = append(out, event.Start(segEnd, timer))
				}
				out = append(out, e)
			} else if closeTs > segEnd {
				out = append(out, event.Start(segEnd, timer), e)
			}
		default:
			out = append(out, e)
		}
	}

	if closeIdx < 0 {
		// The interval was still open; the timer keeps running after the
		// removed span.
		out = append(out, event.Start(segEnd, timer))
	}

	// Boundary events were inserted near their pair, which can land them out
	// of order relative to other timers' records in between. A stable sort
	// restores chronological order without disturbing per-timer sequences.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ts < out[j].Ts })
	return out, true
}

// findSegmentPair replays the log to locate the start record and closing
// record (pause or pause_all) of the interval containing the segment.
// closeIdx is -1 when the interval is still open at log end.
func findSegmentPair(events []event.Event, timer string, segStart, segEnd int64) (startIdx, closeIdx int, startTs, closeTs int64, found bool) {
	openIdx := -1
	var openTs int64

	for i, e := range events {
		switch e.Kind {
		case event.KindStart:
			if e.Timer == timer {
				openIdx = i
				openTs = e.Ts
			}
		case event.KindPause:
			if e.Timer == timer && openIdx >= 0 {
				if interval.Overlap(openTs, e.Ts, segStart, segEnd) > 0 {
					return openIdx, i, openTs, e.Ts, true
				}
				openIdx = -1
			}
		case event.KindPauseAll:
			if openIdx >= 0 {
				if interval.Overlap(openTs, e.Ts, segStart, segEnd) > 0 {
					return openIdx, i, openTs, e.Ts, true
				}
				openIdx = -1
			}
		}
	}

	if openIdx >= 0 && interval.Overlap(openTs, math.MaxInt64, segStart, segEnd) > 0 {
		return openIdx, -1, openTs, 0, true
	}
	return 0, 0, 0, 0, false
}
