// internal/config/validate.go
package config

import "fmt"

// knownEvents are the transition events webhooks may subscribe to.
var knownEvents = map[string]bool{
	"connected":    true,
	"disconnected": true,
	"degraded":     true,
}

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	r := cfg.Resolver

	// ------------------------------------------------------------
	// WIRELESS
	// ------------------------------------------------------------

	if r.Wireless.Interface == "" {
		return fmt.Errorf("wireless: interface is required")
	}
	if r.Wireless.SignalFloor != nil && r.Wireless.SignalCeil != nil {
		if *r.Wireless.SignalCeil <= *r.Wireless.SignalFloor {
			return fmt.Errorf(
				"wireless: signal_ceil (%v) must be greater than signal_floor (%v)",
				*r.Wireless.SignalCeil,
				*r.Wireless.SignalFloor,
			)
		}
	}
	if r.Wireless.PathWaitMs < 0 {
		return fmt.Errorf("wireless: path_wait_ms must not be negative")
	}
	if r.Wireless.PollIntervalMs < 0 {
		return fmt.Errorf("wireless: poll_interval_ms must not be negative")
	}

	// ------------------------------------------------------------
	// THERMAL UNITS
	// ------------------------------------------------------------

	seen := make(map[string]bool)
	for _, t := range r.Thermal {
		if t.ID == "" {
			return fmt.Errorf("thermal: unit id is required")
		}
		if seen[t.ID] {
			return fmt.Errorf("thermal: duplicate unit id %q", t.ID)
		}
		seen[t.ID] = true

		if t.Endpoint == "" {
			return fmt.Errorf("thermal unit %q: endpoint is required", t.ID)
		}
		if t.Scale < 0 {
			return fmt.Errorf("thermal unit %q: scale must not be negative", t.ID)
		}
		if t.FloorC != nil && t.CeilC != nil && *t.CeilC <= *t.FloorC {
			return fmt.Errorf(
				"thermal unit %q: ceil_c (%v) must be greater than floor_c (%v)",
				t.ID,
				*t.CeilC,
				*t.FloorC,
			)
		}
	}

	// ------------------------------------------------------------
	// WEBHOOKS
	// ------------------------------------------------------------

	for i, wh := range r.Webhooks {
		if wh.URL == "" {
			return fmt.Errorf("webhook %d: url is required", i)
		}
		if len(wh.Events) == 0 {
			return fmt.Errorf("webhook %d: at least one event is required", i)
		}
		for _, e := range wh.Events {
			if !knownEvents[e] {
				return fmt.Errorf("webhook %d: unknown event %q", i, e)
			}
		}
	}

	// ------------------------------------------------------------
	// PERMISSION
	// ------------------------------------------------------------

	if r.Permission.RetriggerDelayMs < 0 {
		return fmt.Errorf("permission: retrigger_delay_ms must not be negative")
	}

	return nil
}
