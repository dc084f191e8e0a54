// internal/sensor/api.go
package sensor

import "errors"

// Source failure taxonomy. Adapters wrap these so strategies can
// classify failures without knowing the transport.
var (
	// ErrUnavailable: no such interface or sensor present.
	ErrUnavailable = errors.New("sensor: source unavailable")
	// ErrDisabled: the radio/sensor exists but is powered off.
	ErrDisabled = errors.New("sensor: source disabled")
	// ErrPermissionDenied: the privileged attribute was withheld.
	ErrPermissionDenied = errors.New("sensor: permission denied")
)

// Association is one synchronous answer from the authoritative source.
type Association struct {
	// Name may legitimately be empty while associated: attribution is
	// permission-gated and the source withholds it silently.
	Name string
	// Signal in source units: dBm for wireless, degrees for thermal.
	Signal float64
	// HasSignal is false when the source answered without a measurement.
	HasSignal bool
	// PowerOn reports radio/sensor power state.
	PowerOn bool
	// Classification: security type for wireless, sensor kind for thermal.
	Classification string
}

// API is the authoritative synchronous source. Query must return within
// the call's own bound; it carries no external time budget.
type API interface {
	Query() (Association, error)
}

// PathUpdate describes one observed connectivity-path change.
type PathUpdate struct {
	Interface string // interface the path runs over
	UsesClass bool   // path uses the target interface class
	Satisfied bool   // path is usable end to end
}

// PathMonitor delivers path updates to any number of subscribers.
// Subscribe returns a buffered channel and a cancel function. Cancel
// must be called exactly once per subscription; after cancel the
// channel is closed and delivers no further updates.
type PathMonitor interface {
	Subscribe() (<-chan PathUpdate, func())
}
