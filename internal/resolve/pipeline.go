// internal/resolve/pipeline.go
package resolve

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/linkstat/internal/permission"
	"github.com/tamzrod/linkstat/internal/status"
)

// Placeholder names substituted when a connected reading carries no
// attribution. Wording depends on whether the privileged attribute is
// available at all.
const (
	placeholderGranted  = "(unknown network)"
	placeholderWithheld = "(name withheld)"
)

// Recorder is the exact persistence contract the pipeline uses.
type Recorder interface {
	Record(*status.Snapshot) error
}

// Pipeline runs the strategy chain in priority order and publishes the
// merged snapshot. Resolve is invoked only through the Coalescer; it is
// not safe for concurrent use.
type Pipeline struct {
	Strategies []Strategy
	Permission *permission.Tracker
	Store      *status.Store
	History    Recorder // optional
	Logger     *slog.Logger
}

// Resolve runs the chain once, publishes the result, and returns it.
// It never returns an error: every strategy failure degrades to the
// next strategy, and total failure degrades to a default disconnected
// snapshot.
func (p *Pipeline) Resolve(ctx context.Context) *status.Snapshot {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		final    status.Reading
		answered bool
		power    *bool // last reported radio/sensor power state
	)

	for _, s := range p.Strategies {
		r, ok := s.Probe(ctx)
		if r.SourceEnabled != nil {
			power = r.SourceEnabled
		}
		if !ok {
			logger.Debug("strategy silent", "strategy", s.Name())
			continue
		}
		logger.Debug("strategy answered",
			"strategy", s.Name(),
			"connected", r.Connected,
			"confidence", r.Confidence.String())
		final = r
		answered = true
		break
	}

	if !answered {
		final = p.defaultReading(power)
	}

	snap := p.merge(final, power)
	p.Store.Replace(snap)

	if p.History != nil {
		if err := p.History.Record(snap); err != nil {
			logger.Warn("history record failed", "error", err)
		}
	}

	return snap
}

// defaultReading synthesizes the degraded snapshot body when no
// strategy produced a definitive answer. Power state is taken from the
// last strategy that could report it; absent that, the source is
// treated as disabled.
func (p *Pipeline) defaultReading(power *bool) status.Reading {
	enabled := power != nil && *power
	if !enabled {
		return status.Reading{
			Confidence:   status.Unavailable,
			ErrorMessage: msgSourceDisabled,
		}
	}
	return status.Reading{
		Confidence:   status.Heuristic,
		ErrorMessage: msgNotConnected,
	}
}

// merge applies the cross-run invariants and permission gating, then
// builds the published snapshot.
func (p *Pipeline) merge(r status.Reading, power *bool) *status.Snapshot {
	permState := permission.Granted
	if p.Permission != nil {
		permState = p.Permission.State()
	}

	if r.Connected && r.Name == "" {
		// The privileged attribute was needed and missing: fire the
		// one-shot request, then substitute a placeholder. Consumers
		// never see a connected-with-no-name state.
		if p.Permission != nil {
			p.Permission.RequestOnce()
			permState = p.Permission.State()
		}
		switch permState {
		case permission.Granted:
			r.Name = placeholderGranted
		default:
			r.Name = placeholderWithheld
		}
		if permState == permission.Denied && r.ErrorMessage == "" {
			r.ErrorMessage = msgPermissionDenied
		}
	}

	if !r.Connected {
		r.Quality = 0
		r.Name = ""
	}

	enabled := r.Connected
	if !enabled {
		if r.SourceEnabled != nil {
			enabled = *r.SourceEnabled
		} else if power != nil {
			enabled = *power
		}
	}
	if r.Confidence == status.Unavailable {
		enabled = false
	}

	return &status.Snapshot{
		RunID:             uuid.NewString(),
		At:                time.Now().UTC(),
		Connected:         r.Connected,
		Name:              r.Name,
		RawSignal:         r.RawSignal,
		Classification:    r.Classification,
		Quality:           r.Quality,
		Confidence:        r.Confidence,
		ErrorMessage:      r.ErrorMessage,
		PermissionGranted: permState == permission.Granted,
		SourceEnabled:     enabled,
	}
}
