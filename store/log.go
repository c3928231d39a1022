package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// WrittenLog tracks which game IDs have already been archived, backed by an
// append-only file with one ID per line. It is a dedupe list, not a WAL:
// a partial final line after a crash is simply ignored on the next load.
type WrittenLog struct {
	mu      sync.RWMutex
	path    string
	file    *os.File
	written map[string]struct{}
}

func OpenWrittenLog(path string) (*WrittenLog, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is required")
	}

	written := make(map[string]struct{})
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			id := strings.TrimSpace(scanner.Text())
			if id != "" {
				written[id] = struct{}{}
			}
		}
		_ = f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &WrittenLog{path: path, file: file, written: written}, nil
}

// Contains reports whether the ID has already been recorded.
func (l *WrittenLog) Contains(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.written[id]
	return ok
}

// Count returns the number of recorded IDs.
func (l *WrittenLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.written)
}

// SnapshotBoolMap returns a copy of the recorded IDs for bulk dedupe.
func (l *WrittenLog) SnapshotBoolMap() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]bool, len(l.written))
	for id := range l.written {
		out[id] = true
	}
	return out
}

// Add appends the ID to the log and fsyncs.
func (l *WrittenLog) Add(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.written[id]; ok {
		return nil
	}
	if _, err := l.file.WriteString(id + "\n"); err != nil {
		return fmt.Errorf("append id: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}
	l.written[id] = struct{}{}
	return nil
}

func (l *WrittenLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
