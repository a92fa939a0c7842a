package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mwestrom/tally/internal/config"
	"github.com/mwestrom/tally/internal/core/event"
	"github.com/mwestrom/tally/internal/util"
)

// Envelope is the backup document format: settings and the full event log
// in one self-describing JSON file.
type Envelope struct {
	Version    int             `json:"version"`
	ID         string          `json:"id,omitempty"`
	ExportedAt string          `json:"exportedAt"`
	Settings   json.RawMessage `json:"settings"`
	Events     []event.Event   `json:"events"`
}

// Export writes a backup of the settings and the full event log to path,
// atomically. Returns the envelope ID for logging and confirmation.
func (e *Engine) Export(path string) (string, error) {
	events, err := e.cache.Events()
	if err != nil {
		return "", err
	}

	rawSettings, err := json.Marshal(e.cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	if events == nil {
		events = []event.Event{}
	}

	envelope := Envelope{
		Version:    config.CurrentVersion,
		ID:         uuid.NewString(),
		ExportedAt: e.now().UTC().Format(time.RFC3339),
		Settings:   rawSettings,
		Events:     events,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to finalize backup: %w", err)
	}

	util.LogInfof("exported %d events to %s (id %s)", len(events), path, envelope.ID)
	return envelope.ID, nil
}

// Import replaces all settings and events from a backup file. The document
// is validated in full before anything mutates, so a bad file leaves the
// current state untouched.
func (e *Engine) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup: %w", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return 0, fmt.Errorf("invalid backup file: %w", err)
	}
	if envelope.Version == 0 || len(envelope.Settings) == 0 || envelope.Events == nil {
		return 0, fmt.Errorf("invalid backup file format: missing version, settings, or events")
	}

	imported, err := config.Merge(envelope.Settings)
	if err != nil {
		return 0, fmt.Errorf("invalid backup settings: %w", err)
	}

	// Validation passed; from here on the import is applied.
	*e.cfg = *imported
	if err := e.saveSettings(); err != nil {
		return 0, err
	}

	if err := e.cache.ReplaceAll(envelope.Events); err != nil {
		return 0, err
	}

	e.names.Reset()
	e.names.ObserveEvents(envelope.Events)
	e.cache.OnSettingsChanged()

	util.LogInfof("imported %d events from %s", len(envelope.Events), path)
	return len(envelope.Events), nil
}
