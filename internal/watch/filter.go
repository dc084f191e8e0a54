// internal/watch/filter.go
package watch

import (
	"sync"

	"github.com/tamzrod/linkstat/internal/sensor"
)

// ClassOnly narrows a PathMonitor to updates for the target interface
// class, mirroring an event source pre-filtered at subscription time.
type ClassOnly struct {
	Source sensor.PathMonitor
}

// Subscribe implements sensor.PathMonitor. The forwarding goroutine
// lives exactly as long as the subscription.
func (f ClassOnly) Subscribe() (<-chan sensor.PathUpdate, func()) {
	in, cancelIn := f.Source.Subscribe()
	out := make(chan sensor.PathUpdate, 4)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case upd, ok := <-in:
				if !ok {
					return
				}
				if !upd.UsesClass {
					continue
				}
				select {
				case out <- upd:
				default:
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			cancelIn()
			close(done)
		})
	}
	return out, cancel
}
