package store

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mwestrom/tally/internal/util"
)

// Watcher reports external changes to the event log file, so a live view
// can drop its caches when another process rewrites history. The parent
// directory is watched because ReplaceAll swaps the file via rename.
type Watcher struct {
	watcher *fsnotify.Watcher
	name    string
	changes chan struct{}
}

// NewWatcher starts watching the log at path.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		name:    filepath.Base(path),
		changes: make(chan struct{}, 1),
	}
	go w.run()
	return w, nil
}

// Changes delivers one signal per observed modification. The channel is
// never closed while the watcher is open; coalesced signals are fine since
// consumers only invalidate.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogWarnf("event log watcher error: %v", err)
		}
	}
}
