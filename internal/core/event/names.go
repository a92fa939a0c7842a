package event

import "strings"

// Registry tracks the first-seen original casing of each timer name and
// resolves display names. Resolution priority: user-set friendly name,
// then first-seen casing, then the normalized name itself.
type Registry struct {
	firstSeen map[string]string
	friendly  func(normalized string) (string, bool)
}

// NewRegistry creates a registry. The friendly lookup is consulted on every
// resolution so renames take effect without rebuilding the registry; it may
// be nil.
func NewRegistry(friendly func(normalized string) (string, bool)) *Registry {
	return &Registry{
		firstSeen: make(map[string]string),
		friendly:  friendly,
	}
}

// Observe records the original casing of a name if it is the first time the
// timer has been seen, and returns the normalized identity.
func (r *Registry) Observe(original string) string {
	normalized := Normalize(original)
	if normalized == "" {
		return normalized
	}
	if _, ok := r.firstSeen[normalized]; !ok {
		r.firstSeen[normalized] = strings.TrimSpace(original)
	}
	return normalized
}

// ObserveEvents rebuilds first-seen casings from a full log, e.g. after an
// import replaced the history.
func (r *Registry) ObserveEvents(events []Event) {
	for _, e := range events {
		if e.Timer != "" {
			r.Observe(e.Timer)
		}
	}
}

// DisplayName resolves the name to show for a normalized timer identity.
func (r *Registry) DisplayName(normalized string) string {
	if r.friendly != nil {
		if name, ok := r.friendly(normalized); ok && name != "" {
			return name
		}
	}
	if name, ok := r.firstSeen[normalized]; ok {
		return name
	}
	return normalized
}

// Forget drops the first-seen casing for a purged timer.
func (r *Registry) Forget(normalized string) {
	delete(r.firstSeen, normalized)
}

// Reset clears all first-seen casings.
func (r *Registry) Reset() {
	r.firstSeen = make(map[string]string)
}
