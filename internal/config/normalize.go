// internal/config/normalize.go
package config

// Defaults applied by Normalize.
var defaultClassPatterns = []string{"wlan*", "wlp*", "wifi*", "ath*"}

const (
	defaultSignalFloor      = -90.0
	defaultSignalCeil       = -30.0
	defaultPathWaitMs       = 2000
	defaultPollIntervalMs   = 1000
	defaultThermalScale     = 10.0
	defaultThermalTimeoutMs = 2000
	defaultThermalPollMs    = 5000
	defaultThermalFloorC    = 0.0
	defaultThermalCeilC     = 100.0
	defaultRetriggerDelayMs = 500
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	r := &cfg.Resolver

	// ------------------------------------------------------------
	// WIRELESS DEFAULTS
	// ------------------------------------------------------------

	w := &r.Wireless
	if w.SignalFloor == nil {
		f := defaultSignalFloor
		w.SignalFloor = &f
	}
	if w.SignalCeil == nil {
		c := defaultSignalCeil
		w.SignalCeil = &c
	}
	if w.PathWaitMs == 0 {
		w.PathWaitMs = defaultPathWaitMs
	}
	if w.PollIntervalMs == 0 {
		w.PollIntervalMs = defaultPollIntervalMs
	}
	if len(w.ClassPatterns) == 0 {
		w.ClassPatterns = append([]string(nil), defaultClassPatterns...)
	}

	// ------------------------------------------------------------
	// THERMAL DEFAULTS
	// ------------------------------------------------------------

	for i := range r.Thermal {
		t := &r.Thermal[i]
		if t.Scale == 0 {
			t.Scale = defaultThermalScale
		}
		if t.TimeoutMs == 0 {
			t.TimeoutMs = defaultThermalTimeoutMs
		}
		if t.IntervalMs == 0 {
			t.IntervalMs = defaultThermalPollMs
		}
		if t.FloorC == nil {
			f := defaultThermalFloorC
			t.FloorC = &f
		}
		if t.CeilC == nil {
			c := defaultThermalCeilC
			t.CeilC = &c
		}
	}

	// ------------------------------------------------------------
	// PERMISSION
	// ------------------------------------------------------------

	if r.Permission.RetriggerDelayMs == 0 {
		r.Permission.RetriggerDelayMs = defaultRetriggerDelayMs
	}
}
