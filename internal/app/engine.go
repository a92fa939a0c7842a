package app

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mwestrom/tally/internal/config"
	"github.com/mwestrom/tally/internal/core/cache"
	"github.com/mwestrom/tally/internal/core/event"
	"github.com/mwestrom/tally/internal/core/state"
	"github.com/mwestrom/tally/internal/core/timeline"
	"github.com/mwestrom/tally/internal/data/store"
	"github.com/mwestrom/tally/internal/util"
)

// Engine is the composition root for timer actions: it owns the settings,
// the durable store, the name registry, and the cache controller, and is
// the single logical writer over all of them.
type Engine struct {
	cfg     *config.Settings
	cfgPath string
	store   store.Store
	names   *event.Registry
	cache   *cache.Controller
	now     func() time.Time
}

// NewEngine wires an engine over loaded settings and a durable store.
func NewEngine(cfg *config.Settings, cfgPath string, st store.Store) *Engine {
	names := event.NewRegistry(cfg.FriendlyName)
	e := &Engine{
		cfg:     cfg,
		cfgPath: cfgPath,
		store:   st,
		names:   names,
		cache:   cache.NewController(st, cfg, names),
		now:     time.Now,
	}
	return e
}

// SetClock overrides the engine's time source, propagating to the cache.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	e.cache.SetClock(now)
}

// Settings exposes the live settings record. Callers must not mutate it
// directly; use the engine's update methods so caches are invalidated.
func (e *Engine) Settings() *config.Settings {
	return e.cfg
}

// StartTimer starts (or restarts) the named timer. New timers are appended
// to the explicit display order. When pauseOthersOnStart is set, every
// other running timer is paused at the same instant.
func (e *Engine) StartTimer(name string) (*state.TimerState, error) {
	normalized := e.names.Observe(name)
	if normalized == "" {
		return nil, fmt.Errorf("timer name must not be empty")
	}

	if !slices.Contains(e.cfg.TimerOrder, normalized) {
		e.cfg.TimerOrder = append(e.cfg.TimerOrder, normalized)
		if err := e.saveSettings(); err != nil {
			return nil, err
		}
	}

	now := e.now().UnixMilli()

	if e.cfg.PauseOthersOnStart {
		running, err := e.cache.RunningTimers()
		if err != nil {
			return nil, err
		}
		for _, r := range running {
			if r == normalized {
				continue
			}
			if err := e.cache.Append(event.Pause(now, r)); err != nil {
				return nil, err
			}
		}
	}

	if err := e.cache.Append(event.Start(now, normalized)); err != nil {
		return nil, err
	}
	util.LogInfof("timer started: %s", normalized)
	return e.cache.TimerState()
}

// PauseTimer pauses the named timer. Pausing a timer that is not running
// appends a no-op record; the interval builder tolerates it.
func (e *Engine) PauseTimer(name string) (*state.TimerState, error) {
	normalized := event.Normalize(name)
	if normalized == "" {
		return nil, fmt.Errorf("timer name must not be empty")
	}
	if err := e.cache.Append(event.Pause(e.now().UnixMilli(), normalized)); err != nil {
		return nil, err
	}
	util.LogInfof("timer paused: %s", normalized)
	return e.cache.TimerState()
}

// PauseAllTimers stops every running timer at once.
func (e *Engine) PauseAllTimers() (*state.TimerState, error) {
	if err := e.cache.Append(event.PauseAll(e.now().UnixMilli())); err != nil {
		return nil, err
	}
	util.LogInfo("all timers paused")
	return e.cache.TimerState()
}

// RenameTimer sets a friendly display name for a timer. The log keeps the
// normalized identity; only presentation changes.
func (e *Engine) RenameTimer(name, friendly string) (*state.TimerState, error) {
	normalized := event.Normalize(name)
	friendly = strings.TrimSpace(friendly)
	if normalized == "" || friendly == "" {
		return nil, fmt.Errorf("timer name and new name must not be empty")
	}

	e.cfg.TimerFriendlyNames[normalized] = friendly
	if err := e.saveSettings(); err != nil {
		return nil, err
	}
	e.cache.OnSettingsChanged()
	return e.cache.TimerState()
}

// DeleteTimer purges a timer: its start/pause events are dropped from the
// log (pause_all records are global and stay), and its settings entries are
// removed.
func (e *Engine) DeleteTimer(name string) (*state.TimerState, error) {
	normalized := event.Normalize(name)
	if normalized == "" {
		return nil, fmt.Errorf("timer name must not be empty")
	}

	e.cfg.TimerOrder = slices.DeleteFunc(e.cfg.TimerOrder, func(n string) bool { return n == normalized })
	delete(e.cfg.TimerFriendlyNames, normalized)
	if err := e.saveSettings(); err != nil {
		return nil, err
	}

	events, err := e.cache.Events()
	if err != nil {
		return nil, err
	}
	if err := e.cache.ReplaceAll(event.WithoutTimer(events, normalized)); err != nil {
		return nil, err
	}
	e.names.Forget(normalized)
	util.LogInfof("timer purged: %s", normalized)
	return e.cache.TimerState()
}

// DeleteSegment removes the logged span backing one rendered timeline
// segment, preserving any unclipped remainder of the underlying interval.
func (e *Engine) DeleteSegment(name string, segStart, segEnd int64) (*state.TimerState, error) {
	normalized := event.Normalize(name)
	events, err := e.cache.Events()
	if err != nil {
		return nil, err
	}

	rewritten, found := removeSegment(events, normalized, segStart, segEnd)
	if !found {
		return nil, fmt.Errorf("no logged span for timer %q covering that segment", normalized)
	}
	if err := e.cache.ReplaceAll(rewritten); err != nil {
		return nil, err
	}
	util.LogInfof("segment removed: %s [%d,%d)", normalized, segStart, segEnd)
	return e.cache.TimerState()
}

// UpdateDayStart changes the logical day boundary and invalidates the
// day-relative caches.
func (e *Engine) UpdateDayStart(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid day start %02d:%02d", hour, minute)
	}
	e.cfg.DayStartHour = hour
	e.cfg.DayStartMinute = minute
	if err := e.saveSettings(); err != nil {
		return err
	}
	e.cache.OnSettingsChanged()
	return nil
}

// UpdatePauseOthers toggles whether starting a timer pauses the rest.
func (e *Engine) UpdatePauseOthers(on bool) error {
	e.cfg.PauseOthersOnStart = on
	return e.saveSettings()
}

// UpdateTimerOrder replaces the explicit display order.
func (e *Engine) UpdateTimerOrder(order []string) error {
	normalized := make([]string, 0, len(order))
	for _, name := range order {
		if n := event.Normalize(name); n != "" {
			normalized = append(normalized, n)
		}
	}
	e.cfg.TimerOrder = normalized
	if err := e.saveSettings(); err != nil {
		return err
	}
	e.cache.OnSettingsChanged()
	return nil
}

// TimerState returns the cached whole-app view.
func (e *Engine) TimerState() (*state.TimerState, error) {
	return e.cache.TimerState()
}

// RunningTimers returns the running timer names in encounter order.
func (e *Engine) RunningTimers() ([]string, error) {
	return e.cache.RunningTimers()
}

// Timeline returns the renderable timeline for the day containing date, or
// today when date is nil.
func (e *Engine) Timeline(date *time.Time) (*timeline.Data, error) {
	return e.cache.Timeline(date)
}

// TraySnapshot returns the live-display projection.
func (e *Engine) TraySnapshot() (*cache.TraySnapshot, error) {
	return e.cache.TraySnapshot()
}

// EventsPath returns the durable log location the engine writes to.
func (e *Engine) EventsPath() string {
	return e.store.Path()
}

// Reload drops every cache tier so the next read rebuilds from disk. Used
// when the log file changed externally.
func (e *Engine) Reload() {
	e.cache.InvalidateAll()
}

func (e *Engine) saveSettings() error {
	if err := e.cfg.Save(e.cfgPath); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}
