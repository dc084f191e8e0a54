// internal/resolve/direct.go
package resolve

import (
	"context"

	"github.com/tamzrod/linkstat/internal/sensor"
	"github.com/tamzrod/linkstat/internal/status"
)

// DirectQuery asks the authoritative sensor API synchronously.
// It succeeds only when the source reveals a non-empty identifying
// name; an associated link with a withheld name counts as silence so
// the inference strategies can take over. Power-off is definitive.
type DirectQuery struct {
	API         sensor.API
	SignalFloor float64
	SignalCeil  float64
}

func (d *DirectQuery) Name() string { return "direct" }

func (d *DirectQuery) Probe(ctx context.Context) (status.Reading, bool) {
	assoc, err := d.API.Query()
	if err != nil {
		// Source gone entirely. Not definitive: a cruder strategy may
		// still see something the primary API cannot.
		return status.Reading{}, false
	}

	on := assoc.PowerOn
	if !on {
		return status.Reading{
			Confidence:    status.Unavailable,
			ErrorMessage:  msgSourceDisabled,
			SourceEnabled: &on,
		}, true
	}

	if assoc.Name == "" {
		// The API answered but withheld attribution. Carry the power
		// state forward and stay silent.
		return status.Reading{SourceEnabled: &on}, false
	}

	r := status.Reading{
		Connected:      true,
		Name:           assoc.Name,
		Classification: assoc.Classification,
		Confidence:     status.Authoritative,
		SourceEnabled:  &on,
	}
	if assoc.HasSignal {
		sig := assoc.Signal
		r.RawSignal = &sig
		r.Quality = status.Score(sig, d.SignalFloor, d.SignalCeil)
	}
	return r, true
}
