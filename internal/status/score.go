// internal/status/score.go
package status

import "math"

// Default wireless signal range in dBm. Readings outside the range are
// clamped, never rejected.
const (
	DefaultSignalFloor = -90.0
	DefaultSignalCeil  = -30.0
)

// Score maps a raw signal measurement onto [0,1].
// Clamp first, then linear rescale. No IO. No side effects.
// Total: defined for every real input, including NaN (scores 0).
func Score(raw, floor, ceil float64) float64 {
	if ceil <= floor {
		return 0
	}
	if math.IsNaN(raw) || raw <= floor {
		return 0
	}
	if raw >= ceil {
		return 1
	}
	return (raw - floor) / (ceil - floor)
}

// Percent converts a quality score into a whole percentage.
func Percent(q float64) int {
	if math.IsNaN(q) || q <= 0 {
		return 0
	}
	if q >= 1 {
		return 100
	}
	return int(math.Round(q * 100))
}
