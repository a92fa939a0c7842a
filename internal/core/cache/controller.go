package cache

import (
	"slices"
	"time"

	"github.com/mwestrom/tally/internal/core/clock"
	"github.com/mwestrom/tally/internal/core/event"
	"github.com/mwestrom/tally/internal/core/interval"
	"github.com/mwestrom/tally/internal/core/state"
	"github.com/mwestrom/tally/internal/core/timeline"
	"github.com/mwestrom/tally/internal/util"
)

// EventSource is the durable log the controller sits in front of. Append
// and ReplaceAll must be atomic from the controller's perspective; the log
// on disk stays authoritative and a cold start rebuilds everything from it.
type EventSource interface {
	Load() ([]event.Event, error)
	Append(event.Event) error
	ReplaceAll([]event.Event) error
}

// SettingsView is what the controller reads from settings. Day-boundary
// fields feed the staleness check; the order feeds sorting.
type SettingsView interface {
	DayBoundary() (hour, minute int)
	Order() []string
}

// Controller owns the three cache tiers over the event log and its derived
// views. It is the single writer in the process: all mutation goes through
// Append, ReplaceAll, or the invalidation hooks, called synchronously from
// action handlers. Reads of the tray snapshot are safe to drive from a
// once-per-second tick without recomputation.
type Controller struct {
	source   EventSource
	settings SettingsView
	names    *event.Registry
	now      func() time.Time

	// Tier 1: raw log, lazily loaded, nil until first access.
	events []event.Event
	loaded bool

	// Tier 2: derived structures, each independently invalidated.
	processed  *interval.Processed
	colorOrder []string
	state      *state.TimerState
	stateTime  time.Time

	// Tier 3: minimal projection for live display.
	snapshot *TraySnapshot
}

// NewController creates a controller over the given durable source.
func NewController(source EventSource, settings SettingsView, names *event.Registry) *Controller {
	return &Controller{
		source:   source,
		settings: settings,
		names:    names,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Tests use this to cross day
// boundaries deterministically.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// Events returns the in-memory log, loading it from the source on first
// access.
func (c *Controller) Events() ([]event.Event, error) {
	if !c.loaded {
		events, err := c.source.Load()
		if err != nil {
			return nil, err
		}
		c.events = events
		c.loaded = true
		c.names.ObserveEvents(events)
		util.LogDebugf("event log loaded: %d events", len(events))
	}
	return c.events, nil
}

// Processed returns the interval view, built from the log on demand and
// kept current incrementally on appends.
func (c *Controller) Processed() (*interval.Processed, error) {
	if c.processed == nil {
		events, err := c.Events()
		if err != nil {
			return nil, err
		}
		c.processed = interval.Build(events)
	}
	return c.processed, nil
}

// ColorOrder returns timer names by first start event, scanned from the log
// on demand and appended to incrementally.
func (c *Controller) ColorOrder() ([]string, error) {
	if c.colorOrder == nil {
		events, err := c.Events()
		if err != nil {
			return nil, err
		}
		order := make([]string, 0)
		for _, e := range events {
			if e.Kind == event.KindStart && !slices.Contains(order, e.Timer) {
				order = append(order, e.Timer)
			}
		}
		c.colorOrder = order
	}
	return c.colorOrder, nil
}

// Append durably writes one event, then folds it into every cached tier.
// The in-memory caches mutate only after the durable write succeeds, so a
// failed write leaves memory consistent with disk.
func (c *Controller) Append(e event.Event) error {
	events, err := c.Events()
	if err != nil {
		return err
	}
	if err := c.source.Append(e); err != nil {
		return err
	}

	c.events = append(events, e)
	if e.Timer != "" {
		c.names.Observe(e.Timer)
	}
	if c.processed != nil {
		c.processed.Apply(e)
	}
	if c.colorOrder != nil && e.Kind == event.KindStart && !slices.Contains(c.colorOrder, e.Timer) {
		c.colorOrder = append(c.colorOrder, e.Timer)
	}

	// TimerState is only invalidated, never patched: recomputing it from the
	// already-incremental interval view is cheap.
	c.state = nil
	c.snapshot = nil
	return nil
}

// ReplaceAll durably rewrites the whole log, then discards every derived
// cache. Arbitrary historical entries may have changed, which per-event
// incremental updates cannot safely patch.
func (c *Controller) ReplaceAll(events []event.Event) error {
	if err := c.source.ReplaceAll(events); err != nil {
		return err
	}
	c.events = events
	c.loaded = true
	c.processed = nil
	c.colorOrder = nil
	c.state = nil
	c.snapshot = nil
	return nil
}

// OnSettingsChanged invalidates the day-relative views. Call it whenever
// settings that affect day boundaries, ordering, or display names change.
func (c *Controller) OnSettingsChanged() {
	c.state = nil
	c.snapshot = nil
}

// InvalidateAll drops every tier including the raw log, forcing a reload
// from the source. Used when the log file changed under us.
func (c *Controller) InvalidateAll() {
	c.events = nil
	c.loaded = false
	c.processed = nil
	c.colorOrder = nil
	c.state = nil
	c.snapshot = nil
}

// TimerState returns the cached whole-app view, recomputing when absent or
// when the logical day has rolled over since it was built. Elapsed-today
// and weekly figures are day-relative and must not silently survive a day
// boundary even with zero new events.
func (c *Controller) TimerState() (*state.TimerState, error) {
	if c.state != nil {
		hour, minute := c.settings.DayBoundary()
		now := c.now()
		if !clock.DayStart(now, hour, minute).Equal(clock.DayStart(c.stateTime.In(now.Location()), hour, minute)) {
			util.LogDebug("timer state cache crossed a day boundary, recomputing")
			c.state = nil
		}
	}

	if c.state == nil {
		if err := c.recomputeState(); err != nil {
			return nil, err
		}
	}
	return c.state, nil
}

func (c *Controller) recomputeState() error {
	processed, err := c.Processed()
	if err != nil {
		return err
	}
	colorOrder, err := c.ColorOrder()
	if err != nil {
		return err
	}

	hour, minute := c.settings.DayBoundary()
	now := c.now()
	c.state = state.Compute(state.Input{
		Processed:      processed,
		ColorOrder:     colorOrder,
		Names:          c.names,
		TimerOrder:     c.settings.Order(),
		DayStartHour:   hour,
		DayStartMinute: minute,
	}, now)
	c.stateTime = now
	c.snapshot = buildTraySnapshot(c.state, now)
	return nil
}

// RunningTimers returns the currently running timer names in encounter
// order, without computing the full state.
func (c *Controller) RunningTimers() ([]string, error) {
	processed, err := c.Processed()
	if err != nil {
		return nil, err
	}
	return processed.ActiveTimers(), nil
}

// Timeline builds the timeline view for the day containing date (today
// when nil) from the cached tiers.
func (c *Controller) Timeline(date *time.Time) (*timeline.Data, error) {
	processed, err := c.Processed()
	if err != nil {
		return nil, err
	}
	colorOrder, err := c.ColorOrder()
	if err != nil {
		return nil, err
	}

	hour, minute := c.settings.DayBoundary()
	return timeline.Build(timeline.Input{
		Processed:      processed,
		ColorOrder:     colorOrder,
		Names:          c.names,
		DayStartHour:   hour,
		DayStartMinute: minute,
	}, c.now(), date), nil
}
