// internal/resolve/strategy.go
package resolve

import (
	"context"

	"github.com/tamzrod/linkstat/internal/status"
)

// Strategy is one bounded method of obtaining a status reading.
//
// ok=false means "no answer": the strategy was silent or its wait
// budget expired, and the chain moves on. ok=true is definitive in both
// directions — a connected reading, or an explicit disconnect
// (Connected=false with ErrorMessage set) that stops the chain.
//
// A no-answer Reading may still carry SourceEnabled; the pipeline keeps
// the last reported power state for the synthesized default snapshot.
type Strategy interface {
	Name() string
	Probe(ctx context.Context) (status.Reading, bool)
}
