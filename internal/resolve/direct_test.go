// internal/resolve/direct_test.go
package resolve

import (
	"context"
	"testing"

	"github.com/tamzrod/linkstat/internal/sensor"
	"github.com/tamzrod/linkstat/internal/status"
)

type fakeAPI struct {
	assoc sensor.Association
	err   error
}

func (f *fakeAPI) Query() (sensor.Association, error) { return f.assoc, f.err }

func TestDirect_AuthoritativeAnswer(t *testing.T) {
	d := &DirectQuery{
		API: &fakeAPI{assoc: sensor.Association{
			Name:           "backhaul",
			Signal:         -60,
			HasSignal:      true,
			PowerOn:        true,
			Classification: "wpa2",
		}},
		SignalFloor: -90,
		SignalCeil:  -30,
	}

	r, ok := d.Probe(context.Background())
	if !ok {
		t.Fatalf("expected a definitive answer")
	}
	if !r.Connected || r.Name != "backhaul" || r.Confidence != status.Authoritative {
		t.Fatalf("reading = %+v", r)
	}
	if r.RawSignal == nil || *r.RawSignal != -60 {
		t.Fatalf("RawSignal = %v", r.RawSignal)
	}
	if r.Quality != 0.5 {
		t.Fatalf("Quality = %v, want 0.5", r.Quality)
	}
	if r.Classification != "wpa2" {
		t.Fatalf("Classification = %q", r.Classification)
	}
}

func TestDirect_PowerOffIsDefinitive(t *testing.T) {
	d := &DirectQuery{API: &fakeAPI{assoc: sensor.Association{PowerOn: false}}}

	r, ok := d.Probe(context.Background())
	if !ok {
		t.Fatalf("power-off must be definitive")
	}
	if r.Confidence != status.Unavailable || r.ErrorMessage != msgSourceDisabled {
		t.Fatalf("reading = %+v", r)
	}
	if r.SourceEnabled == nil || *r.SourceEnabled {
		t.Fatalf("SourceEnabled = %v", r.SourceEnabled)
	}
}

func TestDirect_WithheldNameIsSilence(t *testing.T) {
	d := &DirectQuery{API: &fakeAPI{assoc: sensor.Association{PowerOn: true}}}

	r, ok := d.Probe(context.Background())
	if ok {
		t.Fatalf("withheld attribution must not be definitive")
	}
	// Power state still travels with the silent reading.
	if r.SourceEnabled == nil || !*r.SourceEnabled {
		t.Fatalf("SourceEnabled = %v", r.SourceEnabled)
	}
}

func TestDirect_QueryErrorIsSilence(t *testing.T) {
	d := &DirectQuery{API: &fakeAPI{err: sensor.ErrUnavailable}}

	r, ok := d.Probe(context.Background())
	if ok {
		t.Fatalf("query failure must not be definitive")
	}
	if r.SourceEnabled != nil {
		t.Fatalf("failed query carried a power state: %v", *r.SourceEnabled)
	}
}
