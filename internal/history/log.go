// internal/history/log.go
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tamzrod/linkstat/internal/status"
)

// Entry is one line in the append-only JSONL run log.
type Entry struct {
	RunID             string   `json:"run_id"`
	At                string   `json:"at"`
	Connected         bool     `json:"connected"`
	Name              string   `json:"name,omitempty"`
	RawSignal         *float64 `json:"raw_signal,omitempty"`
	Quality           float64  `json:"quality"`
	Confidence        string   `json:"confidence"`
	Error             string   `json:"error,omitempty"`
	PermissionGranted bool     `json:"permission_granted"`
	SourceEnabled     bool     `json:"source_enabled"`
}

// Log records every completed resolution run. Delivery-only: it
// receives snapshots and writes them verbatim, no interpretation.
type Log struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// Open opens (or creates) a run log for appending.
func Open(path string) (*Log, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("history: open file: %w", err)
	}

	return &Log{path: path, file: file}, nil
}

// Record appends one snapshot to the log.
func (l *Log) Record(snap *status.Snapshot) error {
	entry := Entry{
		RunID:             snap.RunID,
		At:                snap.At.Format(time.RFC3339Nano),
		Connected:         snap.Connected,
		Name:              snap.Name,
		RawSignal:         snap.RawSignal,
		Quality:           snap.Quality,
		Confidence:        snap.Confidence.String(),
		Error:             snap.ErrorMessage,
		PermissionGranted: snap.PermissionGranted,
		SourceEnabled:     snap.SourceEnabled,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("history: marshal entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("history: write entry: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
