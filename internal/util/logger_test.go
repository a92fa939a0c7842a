package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, LevelInfo, parseLogLevel("INFO"))
	assert.Equal(t, LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, LevelError, parseLogLevel("error"))
	assert.Equal(t, LevelInfo, parseLogLevel("bogus"))
}

func TestLoggerLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tally.log")
	l, err := NewLogger("warn", path, false)
	require.NoError(t, err)

	l.Debug("quiet")
	l.Info("also quiet")
	l.Warnf("watch %s", "out")
	l.Error("broken")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "[WARN] watch out")
	assert.Contains(t, out, "[ERROR] broken")
}

func TestLoggerSetLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.log")
	l, err := NewLogger("error", path, false)
	require.NoError(t, err)

	l.Info("dropped")
	l.SetLevel(LevelDebug)
	l.Debug("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestLoggerLineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.log")
	l, err := NewLogger("info", path, false)
	require.NoError(t, err)

	l.Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimRight(string(data), "\n")
	// "2006-01-02 15:04:05.000 [INFO] hello"
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3} \[INFO\] hello$`, line)
}
