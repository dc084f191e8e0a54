// internal/history/log_test.go
package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tamzrod/linkstat/internal/status"
)

func sampleSnapshot(run string, connected bool) *status.Snapshot {
	sig := -55.0
	snap := &status.Snapshot{
		RunID:             run,
		At:                time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Connected:         connected,
		Confidence:        status.Authoritative,
		PermissionGranted: true,
		SourceEnabled:     true,
	}
	if connected {
		snap.Name = "backhaul"
		snap.RawSignal = &sig
		snap.Quality = 0.583
	} else {
		snap.ErrorMessage = "not connected"
		snap.Confidence = status.Heuristic
	}
	return snap
}

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("parse line %q: %v", sc.Text(), err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return entries
}

func TestLog_RecordAppendsOneLinePerRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "linkstat.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	if err := log.Record(sampleSnapshot("run-1", true)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := log.Record(sampleSnapshot("run-2", false)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	first := entries[0]
	if first.RunID != "run-1" || !first.Connected || first.Name != "backhaul" {
		t.Fatalf("first entry = %+v", first)
	}
	if first.RawSignal == nil || *first.RawSignal != -55 {
		t.Fatalf("raw_signal = %v", first.RawSignal)
	}
	if first.Confidence != "authoritative" {
		t.Fatalf("confidence = %q", first.Confidence)
	}

	second := entries[1]
	if second.Connected || second.Error != "not connected" {
		t.Fatalf("second entry = %+v", second)
	}
	if second.RawSignal != nil {
		t.Fatalf("disconnected entry carries a signal")
	}
}

func TestLog_ReopenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkstat.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := log.Record(sampleSnapshot("run-1", true)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	log, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer log.Close()
	if err := log.Record(sampleSnapshot("run-2", true)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("entries after reopen = %d, want 2", len(entries))
	}
	if entries[0].RunID != "run-1" || entries[1].RunID != "run-2" {
		t.Fatalf("order = %q, %q", entries[0].RunID, entries[1].RunID)
	}
}
