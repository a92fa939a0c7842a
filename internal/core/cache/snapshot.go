package cache

import (
	"time"

	"github.com/mwestrom/tally/internal/core/state"
)

// TraySnapshot is the Tier 3 projection: just enough to drive a ticking
// display once per second without recomputing state or rescanning the log.
// It stays valid until the next cache invalidation.
type TraySnapshot struct {
	RunningTimers            []string `json:"runningTimers"`
	PrimaryDisplayName       string   `json:"primaryDisplayName"`
	PrimaryElapsedAtSnapshot int64    `json:"primaryElapsedAtSnapshot"`
	SnapshotTime             int64    `json:"snapshotTime"`
	TrayIconIndex            *int     `json:"trayIconIndex"`
}

// PrimaryElapsed extrapolates the primary timer's elapsed-today figure at
// now with plain arithmetic.
func (s *TraySnapshot) PrimaryElapsed(now time.Time) int64 {
	if len(s.RunningTimers) == 0 {
		return s.PrimaryElapsedAtSnapshot
	}
	return s.PrimaryElapsedAtSnapshot + (now.UnixMilli() - s.SnapshotTime)
}

// buildTraySnapshot derives the projection from a freshly computed state.
// The primary timer is the first running one.
func buildTraySnapshot(st *state.TimerState, now time.Time) *TraySnapshot {
	snap := &TraySnapshot{
		RunningTimers: append([]string(nil), st.RunningTimers...),
		SnapshotTime:  now.UnixMilli(),
	}

	if len(st.RunningTimers) > 0 {
		primary := st.RunningTimers[0]
		snap.PrimaryDisplayName = primary
		for _, t := range st.Timers {
			if t.Name == primary {
				snap.PrimaryDisplayName = t.DisplayName
				snap.PrimaryElapsedAtSnapshot = t.ElapsedToday
				break
			}
		}
	}

	if idx, ok := state.TrayIconIndex(st); ok {
		snap.TrayIconIndex = &idx
	}
	return snap
}

// TraySnapshot returns the Tier 3 projection, rebuilding state first when
// needed. On the cached path this is a staleness check plus a map read, so
// a once-per-second caller stays O(1).
func (c *Controller) TraySnapshot() (*TraySnapshot, error) {
	if _, err := c.TimerState(); err != nil {
		return nil, err
	}
	return c.snapshot, nil
}
