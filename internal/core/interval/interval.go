package interval

import (
	"sort"

	"github.com/mwestrom/tally/internal/core/event"
)

// Interval is a completed closed-open [Start, End) span, in epoch
// milliseconds, during which one timer was continuously running.
type Interval struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Processed is the derived view of an event log: completed intervals per
// timer plus the timers still running. After a full replay a timer is in
// Active exactly when its last start is unmatched, never while it also has
// an open entry elsewhere.
type Processed struct {
	Intervals map[string][]Interval
	Active    map[string]int64

	// Open starts in the order they were first seen; drives the
	// encounter-ordered running-timer list.
	activeOrder []string
}

// NewProcessed returns an empty view, equivalent to replaying zero events.
func NewProcessed() *Processed {
	return &Processed{
		Intervals: make(map[string][]Interval),
		Active:    make(map[string]int64),
	}
}

// Build replays a full event log into a Processed view. Events are applied
// in log order; append order is assumed chronological.
func Build(events []event.Event) *Processed {
	p := NewProcessed()
	for _, e := range events {
		p.Apply(e)
	}
	return p
}

// Apply folds one event into the view in O(1) amortized. Build is a fold of
// Apply over the empty view, so incrementally applying events one at a time
// is equivalent to a full rebuild.
//
// A start while already running simply resets the start timestamp; a pause
// for a timer that is not running is a no-op. Both tolerate logs written
// around a crash or a double-press.
func (p *Processed) Apply(e event.Event) {
	switch e.Kind {
	case event.KindStart:
		if _, running := p.Active[e.Timer]; !running {
			p.activeOrder = append(p.activeOrder, e.Timer)
		}
		p.Active[e.Timer] = e.Ts

	case event.KindPause:
		start, running := p.Active[e.Timer]
		if !running {
			return
		}
		p.push(e.Timer, start, e.Ts)
		p.deactivate(e.Timer)

	case event.KindPauseAll:
		for _, timer := range p.activeOrder {
			p.push(timer, p.Active[timer], e.Ts)
		}
		p.Active = make(map[string]int64)
		p.activeOrder = p.activeOrder[:0]
	}
}

// ActiveTimers returns the running timer names in the order their open
// starts were first seen.
func (p *Processed) ActiveTimers() []string {
	out := make([]string, len(p.activeOrder))
	copy(out, p.activeOrder)
	return out
}

// TimerNames returns every timer known to the view, sorted, whether running
// or fully paused.
func (p *Processed) TimerNames() []string {
	seen := make(map[string]struct{}, len(p.Intervals)+len(p.Active))
	names := make([]string, 0, len(p.Intervals)+len(p.Active))
	for name := range p.Intervals {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	for name := range p.Active {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (p *Processed) push(timer string, start, end int64) {
	p.Intervals[timer] = append(p.Intervals[timer], Interval{Start: start, End: end})
}

func (p *Processed) deactivate(timer string) {
	delete(p.Active, timer)
	for i, name := range p.activeOrder {
		if name == timer {
			p.activeOrder = append(p.activeOrder[:i], p.activeOrder[i+1:]...)
			return
		}
	}
}
