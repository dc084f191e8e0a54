// internal/notify/dispatcher.go
package notify

import (
	"context"
	"log/slog"

	"github.com/tamzrod/linkstat/internal/status"
)

// Dispatcher fans snapshot transitions out to matching webhooks.
// It decides only which event, if any, a new snapshot represents; the
// wire transport lives in Send.
type Dispatcher struct {
	configs []WebhookConfig
	logger  *slog.Logger
}

// NewDispatcher returns nil when no webhooks are configured; callers
// nil-check before wiring the watch loop.
func NewDispatcher(configs []WebhookConfig, logger *slog.Logger) *Dispatcher {
	if len(configs) == 0 {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{configs: configs, logger: logger}
}

// Run consumes store change notifications until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, store *status.Store) error {
	ch, cancel := store.Watch()
	defer cancel()

	prev := store.Load()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			cur := store.Load()
			d.observe(prev, cur)
			prev = cur
		}
	}
}

// observe derives the transition event between two snapshots and
// dispatches it. Fires goroutines — does not block the watch loop.
func (d *Dispatcher) observe(prev, cur *status.Snapshot) {
	event := transition(prev, cur)
	if event == "" {
		return
	}

	for _, cfg := range d.configs {
		if !matches(cfg.Events, event) {
			continue
		}
		cfg := cfg
		go func() {
			if err := Send(cfg, event, cur); err != nil {
				d.logger.Warn("webhook delivery failed", "url", cfg.URL, "error", err)
			}
		}()
	}
}

// transition classifies a snapshot change. Initial snapshots and
// like-for-like replacements produce no event.
func transition(prev, cur *status.Snapshot) string {
	if cur == nil || prev == nil {
		return ""
	}
	switch {
	case cur.Connected && !prev.Connected:
		return "connected"
	case !cur.Connected && prev.Connected:
		return "disconnected"
	case cur.Connected && cur.Confidence > prev.Confidence:
		return "degraded"
	}
	return ""
}

func matches(events []string, event string) bool {
	for _, e := range events {
		if e == event {
			return true
		}
	}
	return false
}
