// internal/status/store.go
package status

import (
	"sync"
	"sync/atomic"
)

// Store owns the single published snapshot.
// Exactly one writer (the resolution pipeline); any number of readers.
// Readers never observe a partially-written snapshot: publication is a
// single pointer swap.
type Store struct {
	cur atomic.Pointer[Snapshot]

	mu       sync.Mutex
	watchers []chan struct{}
}

func NewStore() *Store {
	return &Store{}
}

// Load returns the most recently published snapshot, nil before the
// first resolution run completes.
func (s *Store) Load() *Snapshot {
	return s.cur.Load()
}

// Replace publishes a new snapshot and pokes watchers.
// A watcher that has not drained its previous poke keeps exactly one
// pending notification; pokes coalesce, they never queue.
func (s *Store) Replace(snap *Snapshot) {
	s.cur.Store(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Watch registers a change listener. The returned cancel removes it;
// calling cancel more than once is safe.
func (s *Store) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, w := range s.watchers {
				if w == ch {
					s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
					break
				}
			}
		})
	}
	return ch, cancel
}
