// internal/status/reading.go
package status

import "fmt"

// Confidence is the qualitative trust level attached to a reading.
// Strategies are ordered by decreasing confidence; a reading never
// upgrades its own confidence after the fact.
type Confidence int

const (
	// Authoritative: the primary sensor API answered directly.
	Authoritative Confidence = iota
	// PathInferred: derived from a connectivity-path event, not measured.
	PathInferred
	// Heuristic: name-based last-resort inference. Boolean truth only.
	Heuristic
	// Unavailable: no source answered and the radio/sensor is off.
	Unavailable
)

func (c Confidence) String() string {
	switch c {
	case Authoritative:
		return "authoritative"
	case PathInferred:
		return "path-inferred"
	case Heuristic:
		return "heuristic"
	case Unavailable:
		return "unavailable"
	}
	return fmt.Sprintf("confidence(%d)", int(c))
}

// MarshalText renders the confidence as its wire name.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (c *Confidence) UnmarshalText(b []byte) error {
	switch string(b) {
	case "authoritative":
		*c = Authoritative
	case "path-inferred":
		*c = PathInferred
	case "heuristic":
		*c = Heuristic
	case "unavailable":
		*c = Unavailable
	default:
		return fmt.Errorf("status: unknown confidence %q", string(b))
	}
	return nil
}

// Reading is one strategy's answer. Immutable once produced.
// A strategy that cannot answer returns no Reading at all rather than a
// low-confidence guess; "no answer" and "definitive disconnect" are
// different things.
type Reading struct {
	Connected      bool
	Name           string   // empty means withheld or unknown
	RawSignal      *float64 // dBm for wireless, degrees for thermal; nil = not measured
	Classification string   // security type / sensor kind
	Quality        float64  // normalized [0,1]
	Confidence     Confidence
	ErrorMessage   string
	SourceEnabled  *bool // radio/sensor power; nil = this strategy cannot see it
}
