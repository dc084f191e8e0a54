// internal/resolve/pathinfer.go
package resolve

import (
	"context"
	"time"

	"github.com/tamzrod/linkstat/internal/sensor"
	"github.com/tamzrod/linkstat/internal/status"
)

// DefaultPathWait bounds how long one path-inference probe may block.
const DefaultPathWait = 2 * time.Second

// PathInference bridges the asynchronous path monitor into one bounded
// synchronous read. Every probe takes a fresh subscription, waits for
// at most one update, and tears the subscription down whether or not
// the update arrived.
//
// A satisfied path over the target class yields a connected reading
// with an estimated mid-range signal — an estimate, not a measurement.
// A class path that is present but unsatisfied is a definitive
// disconnect. Anything else, including timeout, is no answer.
type PathInference struct {
	Label       string
	Monitor     sensor.PathMonitor
	Wait        time.Duration
	SignalFloor float64
	SignalCeil  float64
}

func (p *PathInference) Name() string { return p.Label }

func (p *PathInference) Probe(ctx context.Context) (status.Reading, bool) {
	updates, cancel := p.Monitor.Subscribe()
	defer cancel()

	wait := p.Wait
	if wait <= 0 {
		wait = DefaultPathWait
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return status.Reading{}, false

	case <-timer.C:
		return status.Reading{}, false

	case upd, ok := <-updates:
		if !ok || !upd.UsesClass {
			// A path over some other interface class says nothing
			// about ours.
			return status.Reading{}, false
		}

		on := true
		if !upd.Satisfied {
			return status.Reading{
				Confidence:    status.PathInferred,
				ErrorMessage:  msgNotConnected,
				SourceEnabled: &on,
			}, true
		}

		est := (p.SignalFloor + p.SignalCeil) / 2
		return status.Reading{
			Connected:     true,
			RawSignal:     &est,
			Quality:       status.Score(est, p.SignalFloor, p.SignalCeil),
			Confidence:    status.PathInferred,
			SourceEnabled: &on,
		}, true
	}
}
