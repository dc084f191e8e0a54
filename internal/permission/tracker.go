// internal/permission/tracker.go
package permission

import (
	"fmt"
	"sync"
	"time"
)

// State of the privileged-attribute authorization.
// Transitions only NotDetermined -> Granted or NotDetermined -> Denied.
// Terminal states never revert.
type State int

const (
	NotDetermined State = iota
	Granted
	Denied
)

func (s State) String() string {
	switch s {
	case NotDetermined:
		return "not-determined"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// defaultRetriggerDelay gives the OS-level permission state time to
// propagate before the pipeline re-queries.
const defaultRetriggerDelay = 500 * time.Millisecond

// Config wires the Tracker to its external collaborators.
type Config struct {
	// Request fires the OS-level privileged access request. Optional.
	Request func()
	// Retrigger asks for one coalesced re-resolution run. Optional.
	Retrigger func()
	// RetriggerDelay defaults to 500ms.
	RetriggerDelay time.Duration
}

// Tracker is the process-wide authorization state machine.
// One instance per process; all strategies observe the same state.
type Tracker struct {
	mu        sync.Mutex
	state     State
	requested bool
	subs      []chan State

	request   func()
	retrigger func()
	delay     time.Duration
}

func NewTracker(cfg Config) *Tracker {
	if cfg.RetriggerDelay <= 0 {
		cfg.RetriggerDelay = defaultRetriggerDelay
	}
	return &Tracker{
		request:   cfg.Request,
		retrigger: cfg.Retrigger,
		delay:     cfg.RetriggerDelay,
	}
}

// State returns the current authorization state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// RequestOnce fires the privileged access request.
// At most once per process lifetime, and only while NotDetermined.
// Safe to call from every resolution run that needs the attribute.
func (t *Tracker) RequestOnce() {
	t.mu.Lock()
	if t.state != NotDetermined || t.requested {
		t.mu.Unlock()
		return
	}
	t.requested = true
	req := t.request
	t.mu.Unlock()

	if req != nil {
		req()
	}
}

// Observe records an externally observed transition.
// NotDetermined is not a valid transition target; reports that would
// move a terminal state are ignored. The first transition away from
// NotDetermined schedules exactly one delayed re-resolution trigger.
func (t *Tracker) Observe(next State) {
	if next != Granted && next != Denied {
		return
	}

	t.mu.Lock()
	if t.state != NotDetermined {
		t.mu.Unlock()
		return
	}
	t.state = next
	subs := make([]chan State, len(t.subs))
	copy(subs, t.subs)
	retrigger := t.retrigger
	delay := t.delay
	t.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- next:
		default:
		}
	}

	if retrigger != nil {
		time.AfterFunc(delay, retrigger)
	}
}

// Subscribe returns a channel that receives the single terminal
// transition. The channel is buffered; a slow consumer cannot block
// the state machine.
func (t *Tracker) Subscribe() <-chan State {
	ch := make(chan State, 1)
	t.mu.Lock()
	t.subs = append(t.subs, ch)
	t.mu.Unlock()
	return ch
}
