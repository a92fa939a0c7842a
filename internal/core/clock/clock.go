package clock

import (
	"math"
	"time"
)

// DayStart returns the logical day boundary containing t: t's calendar date
// at hour:minute, rolled back one calendar day when t is before that
// boundary. With a 06:00 day start, 05:59 still belongs to the previous
// logical day.
func DayStart(t time.Time, hour, minute int) time.Time {
	start := time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
	if t.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start
}

// DayEnd is one calendar day after dayStart. AddDate keeps the boundary at
// the configured wall-clock time across DST transitions instead of adding a
// fixed 24h.
func DayEnd(dayStart time.Time) time.Time {
	return dayStart.AddDate(0, 0, 1)
}

// DayRange returns the [start,end) of the logical day containing t, in
// epoch milliseconds.
func DayRange(t time.Time, hour, minute int) (int64, int64) {
	start := DayStart(t, hour, minute)
	return start.UnixMilli(), DayEnd(start).UnixMilli()
}

// DaysFromMonday maps Monday..Sunday to 0..6.
func DaysFromMonday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// Trend computes the percentage difference between today's value and the
// average over the preceding days of the current week.
//
// On Monday there is no baseline, so the trend is 0. The average divides by
// daysFromMonday rather than by the number of recorded values: days with no
// activity still dilute the baseline. A zero baseline with activity today
// reads as +100%.
func Trend(today int64, previousDays []int64, daysFromMonday int) int {
	if daysFromMonday == 0 {
		return 0
	}
	if len(previousDays) == 0 {
		if today > 0 {
			return 100
		}
		return 0
	}

	var sum int64
	for _, v := range previousDays {
		sum += v
	}
	avg := float64(sum) / float64(daysFromMonday)
	if avg == 0 {
		if today > 0 {
			return 100
		}
		return 0
	}

	return int(math.Round((float64(today) - avg) / avg * 100))
}

// FloorHour truncates t to the start of its hour.
func FloorHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// NextHour returns the first hour boundary strictly after t's hour start.
func NextHour(t time.Time) time.Time {
	return FloorHour(t).Add(time.Hour)
}
