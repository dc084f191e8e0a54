// internal/resolve/heuristic.go
package resolve

import (
	"context"
	"net"
	"path"

	"github.com/tamzrod/linkstat/internal/status"
)

// DefaultHeuristicPatterns matches common wireless interface names.
// The identifier set is hardware-revision-specific; deployments on
// non-default hardware override it in configuration.
var DefaultHeuristicPatterns = []string{"wlan*", "wlp*", "wifi*", "ath*"}

// HeuristicMatch is the terminal fallback: pattern-match the names of
// interfaces that are up and running against known identifiers for the
// sensor class. Boolean "likely active" only, no signal, zero wait.
// Always returns some answer.
type HeuristicMatch struct {
	Patterns []string
	// List enumerates interfaces; nil means net.Interfaces.
	List func() ([]net.Interface, error)
}

func (h *HeuristicMatch) Name() string { return "heuristic" }

func (h *HeuristicMatch) Probe(ctx context.Context) (status.Reading, bool) {
	list := h.List
	if list == nil {
		list = net.Interfaces
	}

	ifaces, err := list()
	if err != nil {
		off := false
		return status.Reading{
			Confidence:    status.Unavailable,
			ErrorMessage:  msgNotConnected,
			SourceEnabled: &off,
		}, true
	}

	patterns := h.Patterns
	if len(patterns) == 0 {
		patterns = DefaultHeuristicPatterns
	}

	const want = net.FlagUp | net.FlagRunning
	for _, ifc := range ifaces {
		if ifc.Flags&want != want {
			continue
		}
		if !matchAny(patterns, ifc.Name) {
			continue
		}
		on := true
		return status.Reading{
			Connected:     true,
			Confidence:    status.Heuristic,
			SourceEnabled: &on,
		}, true
	}

	return status.Reading{
		Confidence:   status.Heuristic,
		ErrorMessage: msgNotConnected,
	}, true
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
