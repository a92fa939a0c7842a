package event

import "strings"

// Kind discriminates the three record types of the timer log.
type Kind string

const (
	KindStart    Kind = "start"
	KindPause    Kind = "pause"
	KindPauseAll Kind = "pause_all"
)

// Event is one record of the append-only timer log. Ts is in milliseconds
// since the Unix epoch. Timer is empty for pause_all records. The JSON shape
// is one value per line in the log file and must round-trip exactly.
type Event struct {
	Kind  Kind   `json:"event"`
	Ts    int64  `json:"ts"`
	Timer string `json:"timer,omitempty"`
}

// Start marks timer as running from ts.
func Start(ts int64, timer string) Event {
	return Event{Kind: KindStart, Ts: ts, Timer: timer}
}

// Pause marks timer as stopped at ts.
func Pause(ts int64, timer string) Event {
	return Event{Kind: KindPause, Ts: ts, Timer: timer}
}

// PauseAll stops every currently running timer at ts.
func PauseAll(ts int64) Event {
	return Event{Kind: KindPauseAll, Ts: ts}
}

// Valid reports whether the record is one of the known kinds with the fields
// that kind requires.
func (e Event) Valid() bool {
	switch e.Kind {
	case KindStart, KindPause:
		return e.Timer != ""
	case KindPauseAll:
		return true
	}
	return false
}

// Normalize produces the canonical identity of a timer name: trimmed and
// lower-cased. All log records and settings keys use the normalized form.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// WithoutTimer filters a log down to the records that survive purging one
// timer: its start/pause records are dropped, pause_all records are global
// and always kept.
func WithoutTimer(events []Event, normalized string) []Event {
	filtered := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Kind != KindPauseAll && e.Timer == normalized {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
