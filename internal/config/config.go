package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CurrentVersion is the settings document version written on save.
const CurrentVersion = 1

// Settings holds all configurable tally behavior. The struct is fully typed
// with explicit defaults; unknown keys in the file are ignored and missing
// keys keep their default values.
type Settings struct {
	Version            int               `json:"version"`
	PauseOthersOnStart bool              `json:"pauseOthersOnStart"`
	DayStartHour       int               `json:"dayStartHour"`
	DayStartMinute     int               `json:"dayStartMinute"`
	Timezone           string            `json:"timezone,omitempty"`
	EventLogPath       string            `json:"eventLogPath,omitempty"` // override for the default data-dir location
	TimerOrder         []string          `json:"timerOrder"`
	TimerFriendlyNames map[string]string `json:"timerFriendlyNames"`
}

// Default returns the settings used when no file exists yet.
func Default() *Settings {
	return &Settings{
		Version:            CurrentVersion,
		PauseOthersOnStart: true,
		DayStartHour:       0,
		DayStartMinute:     0,
		Timezone:           "Local",
		TimerOrder:         []string{},
		TimerFriendlyNames: map[string]string{},
	}
}

// Load reads the settings file at path, merging it over the defaults.
// A missing file yields defaults without error; a corrupt file is an error
// so the caller can decide whether to fall back.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Merge overlays a raw settings document over the defaults. Used by import,
// where the document comes from a backup envelope instead of the settings
// file.
func Merge(raw json.RawMessage) (*Settings, error) {
	cfg := Default()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings document: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the settings atomically: full marshal to a temp file in the
// same directory, then rename over the target.
func (s *Settings) Save(path string) error {
	s.Version = CurrentVersion

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// DayBoundary returns the configured logical day start.
func (s *Settings) DayBoundary() (hour, minute int) {
	return s.DayStartHour, s.DayStartMinute
}

// Order returns the explicit timer display order.
func (s *Settings) Order() []string {
	return s.TimerOrder
}

// FriendlyName looks up the user-set display override for a normalized
// timer name.
func (s *Settings) FriendlyName(normalized string) (string, bool) {
	name, ok := s.TimerFriendlyNames[normalized]
	return name, ok
}

// EventsPath resolves the event log location: the explicit override when
// set, otherwise events.jsonl under the data directory.
func (s *Settings) EventsPath(dataDir string) string {
	if s.EventLogPath != "" {
		return s.EventLogPath
	}
	return filepath.Join(dataDir, "events.jsonl")
}

func (s *Settings) normalize() {
	if s.TimerOrder == nil {
		s.TimerOrder = []string{}
	}
	if s.TimerFriendlyNames == nil {
		s.TimerFriendlyNames = map[string]string{}
	}
}
