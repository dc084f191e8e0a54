// internal/resolve/coalesce.go
package resolve

import (
	"context"
	"log/slog"
)

// Coalescer serializes resolution runs. Triggers may arrive from any
// goroutine at any rate; at most one run is in flight and at most one
// follow-up run is pending. Triggers that arrive while a run is in
// flight collapse into that single follow-up — never a queue.
type Coalescer struct {
	pipeline *Pipeline
	kick     chan struct{}
	logger   *slog.Logger
}

func NewCoalescer(p *Pipeline, logger *slog.Logger) *Coalescer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coalescer{
		pipeline: p,
		kick:     make(chan struct{}, 1),
		logger:   logger,
	}
}

// Trigger requests one resolution run. Never blocks.
func (c *Coalescer) Trigger(reason string) {
	c.logger.Debug("resolution trigger", "reason", reason)
	select {
	case c.kick <- struct{}{}:
	default:
		// A run is already pending; this trigger coalesces into it.
	}
}

// Run consumes triggers until ctx is cancelled. Exactly one resolution
// run executes at a time; runs are not preemptible mid-strategy, but
// every strategy carries its own hard timeout so each run is bounded.
func (c *Coalescer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.kick:
			c.pipeline.Resolve(ctx)
		}
	}
}
