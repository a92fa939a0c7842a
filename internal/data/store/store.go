package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/mwestrom/tally/internal/core/event"
	"github.com/mwestrom/tally/internal/util"
)

// Store is the durable event log boundary. All operations are atomic from
// the caller's perspective: Append either lands the full line or fails, and
// ReplaceAll swaps the whole file via rename.
type Store interface {
	Load() ([]event.Event, error)
	Append(event.Event) error
	ReplaceAll([]event.Event) error
	Path() string
}

// FileStore keeps the log as append-only line-delimited JSON, one event per
// line.
type FileStore struct {
	path string
}

// NewFileStore creates a store over the given log path. The file is created
// lazily on first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the log file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the full log in order. Corrupt or unknown lines are skipped so
// a partially damaged log still loads; a missing file is an empty log.
func (s *FileStore) Load() ([]event.Event, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer file.Close()

	var events []event.Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var e event.Event
		if err := sonic.Unmarshal(line, &e); err != nil {
			util.LogDebugf("skip invalid log line %s:%d - %v", s.path, lineCount, err)
			continue
		}
		if !e.Valid() {
			util.LogDebugf("skip malformed event %s:%d", s.path, lineCount)
			continue
		}
		events = append(events, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event log: %w", err)
	}
	return events, nil
}

// Append durably writes one event as a single line.
func (s *FileStore) Append(e event.Event) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	line, err := sonic.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// ReplaceAll rewrites the full log: marshal everything to a temp file in
// the same directory, then rename over the target.
func (s *FileStore) ReplaceAll(events []event.Event) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var buf bytes.Buffer
	for _, e := range events {
		line, err := sonic.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write event log: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace event log: %w", err)
	}
	return nil
}
