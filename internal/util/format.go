package util

import (
	"fmt"
	"time"
)

// FormatElapsed renders a millisecond duration as "2h 15m", "15m" or "42s".
// Sub-minute durations show seconds so a freshly started timer is visible.
func FormatElapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	d := time.Duration(ms) * time.Millisecond
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// FormatTicking renders a millisecond duration as a live "H:MM:SS" clock.
func FormatTicking(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// FormatTrend renders a trend percentage with an explicit sign, e.g. "+25%".
func FormatTrend(pct int) string {
	if pct > 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}

// FormatClock renders an epoch-millisecond timestamp as wall-clock time in
// the given location.
func FormatClock(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format("15:04")
}
