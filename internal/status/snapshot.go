// internal/status/snapshot.go
package status

import "time"

// Snapshot represents exactly what consumers are allowed to read.
// It is the merged result of one resolution run and replaces the
// previous snapshot wholesale; no field survives across runs.
type Snapshot struct {
	RunID string    `json:"run_id"`
	At    time.Time `json:"at"`

	Connected      bool       `json:"connected"`
	Name           string     `json:"name,omitempty"`
	RawSignal      *float64   `json:"raw_signal,omitempty"`
	Classification string     `json:"classification,omitempty"`
	Quality        float64    `json:"quality"`
	Confidence     Confidence `json:"confidence"`
	ErrorMessage   string     `json:"error,omitempty"`

	PermissionGranted bool `json:"permission_granted"`
	SourceEnabled     bool `json:"source_enabled"`
}
