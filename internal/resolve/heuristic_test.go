// internal/resolve/heuristic_test.go
package resolve

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/tamzrod/linkstat/internal/status"
)

func ifaceList(ifaces ...net.Interface) func() ([]net.Interface, error) {
	return func() ([]net.Interface, error) { return ifaces, nil }
}

func TestHeuristic_MatchingActiveInterface(t *testing.T) {
	h := &HeuristicMatch{
		Patterns: []string{"wlan*", "wlp*"},
		List: ifaceList(
			net.Interface{Name: "eth0", Flags: net.FlagUp | net.FlagRunning},
			net.Interface{Name: "wlan0", Flags: net.FlagUp | net.FlagRunning},
		),
	}

	r, ok := h.Probe(context.Background())
	if !ok {
		t.Fatalf("heuristic must always answer")
	}
	if !r.Connected || r.Confidence != status.Heuristic {
		t.Fatalf("reading = connected=%v confidence=%v", r.Connected, r.Confidence)
	}
	if r.RawSignal != nil {
		t.Fatalf("heuristic reading carries a signal measurement")
	}
}

func TestHeuristic_DownInterfaceDoesNotMatch(t *testing.T) {
	h := &HeuristicMatch{
		Patterns: []string{"wlan*"},
		List: ifaceList(
			net.Interface{Name: "wlan0", Flags: net.FlagUp}, // up but not running
		),
	}

	r, ok := h.Probe(context.Background())
	if !ok {
		t.Fatalf("heuristic must always answer")
	}
	if r.Connected {
		t.Fatalf("connected = true for non-running interface")
	}
	if r.ErrorMessage == "" {
		t.Fatalf("negative answer carries no error message")
	}
}

func TestHeuristic_NonMatchingNames(t *testing.T) {
	h := &HeuristicMatch{
		Patterns: []string{"wlan*"},
		List: ifaceList(
			net.Interface{Name: "eth0", Flags: net.FlagUp | net.FlagRunning},
		),
	}

	r, _ := h.Probe(context.Background())
	if r.Connected {
		t.Fatalf("wired interface matched the wireless identifier set")
	}
}

func TestHeuristic_EnumerationFailure(t *testing.T) {
	h := &HeuristicMatch{
		Patterns: []string{"wlan*"},
		List:     func() ([]net.Interface, error) { return nil, errors.New("boom") },
	}

	r, ok := h.Probe(context.Background())
	if !ok {
		t.Fatalf("heuristic must always answer")
	}
	if r.Confidence != status.Unavailable {
		t.Fatalf("confidence = %v, want unavailable", r.Confidence)
	}
	if r.SourceEnabled == nil || *r.SourceEnabled {
		t.Fatalf("enumeration failure must report source disabled")
	}
}

func TestHeuristic_DefaultPatterns(t *testing.T) {
	h := &HeuristicMatch{
		List: ifaceList(
			net.Interface{Name: "wlp3s0", Flags: net.FlagUp | net.FlagRunning},
		),
	}

	r, _ := h.Probe(context.Background())
	if !r.Connected {
		t.Fatalf("default identifier set missed wlp3s0")
	}
}
