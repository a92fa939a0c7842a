package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.True(t, cfg.PauseOthersOnStart)
	assert.Equal(t, 0, cfg.DayStartHour)
	assert.Equal(t, 0, cfg.DayStartMinute)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.NotNil(t, cfg.TimerOrder)
	assert.NotNil(t, cfg.TimerFriendlyNames)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{"version":1,"dayStartHour":6,"timerOrder":["writing","email"],"futureKey":true}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.DayStartHour)
	assert.Equal(t, []string{"writing", "email"}, cfg.TimerOrder)
	// Fields absent from the file keep their defaults.
	assert.True(t, cfg.PauseOthersOnStart)
	assert.Equal(t, "Local", cfg.Timezone)
}

func TestLoadCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	cfg := Default()
	cfg.PauseOthersOnStart = false
	cfg.DayStartHour = 5
	cfg.DayStartMinute = 30
	cfg.TimerOrder = []string{"a", "b"}
	cfg.TimerFriendlyNames = map[string]string{"a": "Alpha"}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestMerge(t *testing.T) {
	cfg, err := Merge(json.RawMessage(`{"dayStartHour":4,"timerFriendlyNames":{"x":"X Ray"}}`))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.DayStartHour)
	assert.Equal(t, map[string]string{"x": "X Ray"}, cfg.TimerFriendlyNames)
	assert.True(t, cfg.PauseOthersOnStart)

	_, err = Merge(json.RawMessage(`[1,2]`))
	assert.Error(t, err)
}

func TestFriendlyName(t *testing.T) {
	cfg := Default()
	cfg.TimerFriendlyNames["deep work"] = "Focus"

	name, ok := cfg.FriendlyName("deep work")
	assert.True(t, ok)
	assert.Equal(t, "Focus", name)

	_, ok = cfg.FriendlyName("other")
	assert.False(t, ok)
}

func TestEventsPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/data", "events.jsonl"), cfg.EventsPath("/data"))

	cfg.EventLogPath = "/elsewhere/log.jsonl"
	assert.Equal(t, "/elsewhere/log.jsonl", cfg.EventsPath("/data"))
}
