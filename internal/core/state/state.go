package state

import (
	"sort"
	"time"

	"github.com/mwestrom/tally/internal/core/clock"
	"github.com/mwestrom/tally/internal/core/event"
	"github.com/mwestrom/tally/internal/core/interval"
)

// TimerInfo is the per-timer view consumed by displays.
type TimerInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	ElapsedToday int64  `json:"elapsedToday"`
	IsRunning    bool   `json:"isRunning"`
	WeeklyTotal  int64  `json:"weeklyTotal"`
	WeeklyTrend  int    `json:"weeklyTrend"`
}

// TimerState is the central whole-app read model.
type TimerState struct {
	Timers        []TimerInfo       `json:"timers"`
	RunningTimers []string          `json:"runningTimers"`
	TotalToday    int64             `json:"totalToday"`
	WeeklyTrend   int               `json:"weeklyTrend"`
	TimerColors   map[string]string `json:"timerColors"`
}

// Input bundles everything Compute needs. Compute is pure over its input;
// callers own all mutation and caching.
type Input struct {
	Processed      *interval.Processed
	ColorOrder     []string
	Names          *event.Registry
	TimerOrder     []string
	DayStartHour   int
	DayStartMinute int
}

// Compute builds the full timer state view at now.
func Compute(in Input, now time.Time) *TimerState {
	nowMs := now.UnixMilli()
	todayStart := clock.DayStart(now, in.DayStartHour, in.DayStartMinute)
	todayStartMs := todayStart.UnixMilli()
	todayEndMs := clock.DayEnd(todayStart).UnixMilli()

	p := in.Processed

	timers := make([]TimerInfo, 0, len(p.Intervals)+len(p.Active))
	for _, name := range p.TimerNames() {
		var elapsedToday int64
		for _, iv := range p.Intervals[name] {
			elapsedToday += interval.Overlap(iv.Start, iv.End, todayStartMs, todayEndMs)
		}
		start, running := p.Active[name]
		if running {
			elapsedToday += interval.Overlap(start, nowMs, todayStartMs, todayEndMs)
		}

		timers = append(timers, TimerInfo{
			Name:         name,
			DisplayName:  in.Names.DisplayName(name),
			ElapsedToday: elapsedToday,
			IsRunning:    running,
		})
	}

	sortTimers(timers, in.TimerOrder)

	runningTimers := p.ActiveTimers()

	var totalToday int64
	for _, t := range timers {
		totalToday += t.ElapsedToday
	}

	weeklyTrend := overallWeeklyTrend(p, totalToday, todayStart, nowMs)

	weeklyTotals, weeklyTrends := perTimerWeeklyStats(p, todayStart, nowMs)
	for i := range timers {
		timers[i].WeeklyTotal = weeklyTotals[timers[i].Name]
		timers[i].WeeklyTrend = weeklyTrends[timers[i].Name]
	}

	return &TimerState{
		Timers:        timers,
		RunningTimers: runningTimers,
		TotalToday:    totalToday,
		WeeklyTrend:   weeklyTrend,
		TimerColors:   PaletteColors(in.ColorOrder),
	}
}

// sortTimers applies the custom display order: timers in the explicit order
// list sort by their index; timers absent from it are new and surface
// before all ordered ones, among themselves by elapsed time descending.
func sortTimers(timers []TimerInfo, order []string) {
	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i
	}

	sort.SliceStable(timers, func(a, b int) bool {
		ai, aOrdered := index[timers[a].Name]
		bi, bOrdered := index[timers[b].Name]
		switch {
		case !aOrdered && !bOrdered:
			return timers[a].ElapsedToday > timers[b].ElapsedToday
		case !aOrdered:
			return true
		case !bOrdered:
			return false
		default:
			return ai < bi
		}
	})
}

// overallWeeklyTrend compares today's total against the average of each
// preceding day this week. Prior days never include active spans; only
// today's figure is live.
func overallWeeklyTrend(p *interval.Processed, totalToday int64, todayStart time.Time, nowMs int64) int {
	daysFromMonday := clock.DaysFromMonday(todayStart)
	if daysFromMonday == 0 {
		return 0
	}

	previousDays := make([]int64, 0, daysFromMonday)
	for i := 1; i <= daysFromMonday; i++ {
		dayStart := todayStart.AddDate(0, 0, -i)
		dayEnd := clock.DayEnd(dayStart)
		previousDays = append(previousDays,
			interval.SumTotal(p, dayStart.UnixMilli(), dayEnd.UnixMilli(), false, nowMs))
	}

	return clock.Trend(totalToday, previousDays, daysFromMonday)
}

// perTimerWeeklyStats computes per-timer weekly totals and trends across
// Monday..today.
func perTimerWeeklyStats(p *interval.Processed, todayStart time.Time, nowMs int64) (map[string]int64, map[string]int) {
	daysFromMonday := clock.DaysFromMonday(todayStart)
	todayEnd := clock.DayEnd(todayStart)

	todayTotals := interval.SumPerTimer(p, todayStart.UnixMilli(), todayEnd.UnixMilli(), true, nowMs)

	weeklyTotals := make(map[string]int64, len(todayTotals))
	previousDayTotals := make(map[string][]int64)
	for timer, ms := range todayTotals {
		weeklyTotals[timer] = ms
	}

	for i := 1; i <= daysFromMonday; i++ {
		dayStart := todayStart.AddDate(0, 0, -i)
		dayEnd := clock.DayEnd(dayStart)
		dayTotals := interval.SumPerTimer(p, dayStart.UnixMilli(), dayEnd.UnixMilli(), false, nowMs)
		for timer, ms := range dayTotals {
			weeklyTotals[timer] += ms
			previousDayTotals[timer] = append(previousDayTotals[timer], ms)
		}
	}

	weeklyTrends := make(map[string]int, len(weeklyTotals))
	for timer := range weeklyTotals {
		weeklyTrends[timer] = clock.Trend(todayTotals[timer], previousDayTotals[timer], daysFromMonday)
	}

	return weeklyTotals, weeklyTrends
}

// TrayIconIndex returns the icon slot for the running state: the 1-based
// position of the sole running timer within the sorted timer list (so the
// icon number matches what the user sees), 0 when several timers run at
// once, and ok=false when nothing is running.
func TrayIconIndex(s *TimerState) (int, bool) {
	if len(s.RunningTimers) == 0 {
		return 0, false
	}
	if len(s.RunningTimers) > 1 {
		return 0, true
	}
	for i, t := range s.Timers {
		if t.Name == s.RunningTimers[0] {
			return i + 1, true
		}
	}
	return 0, false
}
