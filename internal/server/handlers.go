// internal/server/handlers.go
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tamzrod/linkstat/internal/status"
)

// statusView decorates a snapshot with the derived display helpers.
type statusView struct {
	*status.Snapshot
	Percent int    `json:"percent"`
	Bucket  string `json:"bucket"`
}

func view(snap *status.Snapshot) statusView {
	pct := status.Percent(snap.Quality)
	return statusView{
		Snapshot: snap,
		Percent:  pct,
		Bucket:   status.Bucket(pct),
	}
}

// statusHandler serves the current snapshot.
func statusHandler(store *status.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := store.Load()
		if snap == nil {
			http.Error(w, "no resolution completed yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, view(snap))
	}
}

// thermalHandler serves the current thermal snapshots keyed by unit id.
func thermalHandler(stores map[string]*status.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make(map[string]statusView, len(stores))
		for id, store := range stores {
			if snap := store.Load(); snap != nil {
				out[id] = view(snap)
			}
		}
		writeJSON(w, out)
	}
}

// refreshHandler triggers one coalesced resolution run.
func refreshHandler(refresh func(reason string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		if refresh == nil {
			http.Error(w, "refresh not wired", http.StatusServiceUnavailable)
			return
		}
		refresh("manual refresh")
		w.WriteHeader(http.StatusAccepted)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// statusWSHandler pushes every newly published snapshot to the peer.
// Pokes coalesce in the store watcher, so a slow peer sees the latest
// snapshot, not a backlog.
func statusWSHandler(store *status.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		ch, cancel := store.Watch()
		defer cancel()

		// Reader loop exists only to observe the peer closing.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		if snap := store.Load(); snap != nil {
			if err := conn.WriteJSON(view(snap)); err != nil {
				return
			}
		}

		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				return
			case <-ch:
				snap := store.Load()
				if snap == nil {
					continue
				}
				if err := conn.WriteJSON(view(snap)); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	writeCORS(w)
	_ = json.NewEncoder(w).Encode(v)
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}
