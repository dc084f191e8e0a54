// internal/resolve/coalesce_test.go
package resolve

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tamzrod/linkstat/internal/permission"
	"github.com/tamzrod/linkstat/internal/status"
)

// gatedStrategy blocks each probe until released, so the test controls
// exactly when a resolution run is "in flight".
type gatedStrategy struct {
	started chan struct{}
	release chan struct{}
	runs    atomic.Int32
}

func (g *gatedStrategy) Name() string { return "gated" }

func (g *gatedStrategy) Probe(ctx context.Context) (status.Reading, bool) {
	g.runs.Add(1)
	g.started <- struct{}{}
	<-g.release
	on := true
	return status.Reading{
		Connected:     true,
		Name:          "net",
		Confidence:    status.Authoritative,
		SourceEnabled: &on,
	}, true
}

func TestCoalescer_TriggersDuringRunCollapseToOne(t *testing.T) {
	gated := &gatedStrategy{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	p, _ := newPipeline(permission.NewTracker(permission.Config{}), gated)
	c := NewCoalescer(p, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	c.Trigger("first")
	<-gated.started // run 1 in flight

	// A burst of triggers while the run is in flight.
	c.Trigger("a")
	c.Trigger("b")
	c.Trigger("c")

	gated.release <- struct{}{} // complete run 1

	// Exactly one follow-up run.
	select {
	case <-gated.started:
	case <-time.After(time.Second):
		t.Fatalf("no follow-up run after coalesced triggers")
	}
	gated.release <- struct{}{}

	// And no third.
	select {
	case <-gated.started:
		t.Fatalf("burst produced more than one follow-up run")
	case <-time.After(100 * time.Millisecond):
	}

	if got := gated.runs.Load(); got != 2 {
		t.Fatalf("ran %d times, want 2", got)
	}
}

func TestCoalescer_TriggerNeverBlocks(t *testing.T) {
	gated := &gatedStrategy{
		started: make(chan struct{}, 1),
		release: make(chan struct{}, 8),
	}
	p, _ := newPipeline(permission.NewTracker(permission.Config{}), gated)
	c := NewCoalescer(p, testLogger())

	// No Run loop consuming: every call must still return immediately.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			c.Trigger("flood")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Trigger blocked")
	}
}
