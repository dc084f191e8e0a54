// internal/watch/monitor.go
package watch

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tamzrod/linkstat/internal/sensor"
)

// pollDefault is the polling interval. sysfs does not emit inotify
// events, so polling is the primary change source; fsnotify on an
// auxiliary state path only shortens the reaction time.
const pollDefault = time.Second

// debounceDefault absorbs bursts of file events into one rescan.
const debounceDefault = 200 * time.Millisecond

type Config struct {
	Root          string        // interface tree, defaults to /sys/class/net
	StatePath     string        // optional inotify-capable path (e.g. a network state dir)
	Interval      time.Duration // poll interval, defaults to 1s
	ClassPatterns []string      // identifies the target interface class
	OnChange      func()        // re-resolution hook, once per observed change burst
	Logger        *slog.Logger
}

// Monitor owns the process-lifetime view of connectivity paths.
// It diffs interface operstate per tick (plus fsnotify wake-ups where
// available) and fans each change out to subscribers. New subscribers
// immediately receive the current path state, so a bounded wait on a
// fresh subscription resolves without waiting for the next transition.
type Monitor struct {
	cfg Config

	mu   sync.Mutex
	subs []chan sensor.PathUpdate
	last map[string]string // interface -> operstate
}

func NewMonitor(cfg Config) *Monitor {
	if cfg.Root == "" {
		cfg.Root = "/sys/class/net"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = pollDefault
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	m := &Monitor{
		cfg:  cfg,
		last: make(map[string]string),
	}
	// Prime without emitting: startup state is not a transition.
	m.scan(false)
	return m
}

// Subscribe implements sensor.PathMonitor.
func (m *Monitor) Subscribe() (<-chan sensor.PathUpdate, func()) {
	ch := make(chan sensor.PathUpdate, 4)

	m.mu.Lock()
	if upd, ok := m.currentLocked(); ok {
		ch <- upd
	}
	m.subs = append(m.subs, ch)
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, w := range m.subs {
				if w == ch {
					m.subs = append(m.subs[:i], m.subs[i+1:]...)
					break
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Run watches for interface state changes. Blocks until ctx is
// cancelled. The fsnotify watcher is best-effort; on any failure the
// monitor degrades to polling alone.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	var events <-chan fsnotify.Event
	if m.cfg.StatePath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err == nil {
			if err := watcher.Add(m.cfg.StatePath); err == nil {
				events = watcher.Events
			} else {
				m.cfg.Logger.Debug("state path watch failed, polling only",
					"path", m.cfg.StatePath, "error", err)
			}
			defer watcher.Close()
		}
	}

	// Single debounce timer, reset per event burst.
	debounce := time.NewTimer(debounceDefault)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			m.scan(true)

		case <-debounce.C:
			m.scan(true)

		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(debounceDefault)
		}
	}
}

// scan diffs the interface tree against the last observed state.
// Each changed interface produces one PathUpdate; any change at all
// produces exactly one OnChange call.
func (m *Monitor) scan(emit bool) {
	entries, err := os.ReadDir(m.cfg.Root)
	if err != nil {
		return
	}

	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if name == "lo" {
			continue
		}
		oper, err := os.ReadFile(filepath.Join(m.cfg.Root, name, "operstate"))
		if err != nil {
			continue
		}
		seen[name] = strings.TrimSpace(string(oper))
	}

	m.mu.Lock()
	var updates []sensor.PathUpdate
	for name, state := range seen {
		if prev, ok := m.last[name]; !ok || prev != state {
			updates = append(updates, m.updateLocked(name, state))
		}
	}
	for name := range m.last {
		if _, ok := seen[name]; !ok {
			updates = append(updates, m.updateLocked(name, "down"))
		}
	}
	m.last = seen

	if emit {
		for _, upd := range updates {
			for _, ch := range m.subs {
				select {
				case ch <- upd:
				default:
				}
			}
		}
	}
	m.mu.Unlock()

	if emit && len(updates) > 0 && m.cfg.OnChange != nil {
		m.cfg.OnChange()
	}
}

func (m *Monitor) updateLocked(name, state string) sensor.PathUpdate {
	return sensor.PathUpdate{
		Interface: name,
		UsesClass: matchAny(m.cfg.ClassPatterns, name),
		Satisfied: state == "up",
	}
}

// currentLocked picks the interface that best represents the current
// path: a satisfied class interface wins, then any class interface,
// then any satisfied interface.
func (m *Monitor) currentLocked() (sensor.PathUpdate, bool) {
	var fallback sensor.PathUpdate
	var haveFallback bool
	var classDown sensor.PathUpdate
	var haveClassDown bool

	for name, state := range m.last {
		upd := m.updateLocked(name, state)
		if upd.UsesClass && upd.Satisfied {
			return upd, true
		}
		if upd.UsesClass && !haveClassDown {
			classDown, haveClassDown = upd, true
		}
		if upd.Satisfied && !haveFallback {
			fallback, haveFallback = upd, true
		}
	}
	if haveClassDown {
		return classDown, true
	}
	return fallback, haveFallback
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
