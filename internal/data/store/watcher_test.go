package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mwestrom/tally/internal/core/event"
)

func waitForChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcherSeesAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")
	s := NewFileStore(path)
	require.NoError(t, s.Append(event.Start(1000, "a")))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, s.Append(event.Pause(2000, "a")))
	waitForChange(t, w)
}

func TestWatcherSeesRenameSwap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")
	s := NewFileStore(path)
	require.NoError(t, s.Append(event.Start(1000, "a")))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	// ReplaceAll swaps the file via rename; the watcher must survive that
	// and keep reporting.
	require.NoError(t, s.ReplaceAll([]event.Event{event.Start(5000, "b")}))
	waitForChange(t, w)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))

	select {
	case <-w.Changes():
		t.Fatal("unexpected notification for sibling file")
	case <-time.After(200 * time.Millisecond):
	}
}
