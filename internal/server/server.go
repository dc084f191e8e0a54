// internal/server/server.go
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tamzrod/linkstat/internal/status"
)

// Config configures the snapshot HTTP server.
type Config struct {
	ListenAddr   string                   // address to bind (e.g. :8090)
	Store        *status.Store            // required; the wireless snapshot
	Thermal      map[string]*status.Store // optional thermal snapshots by unit id
	Refresh      func(reason string)      // manual coalesced trigger; optional
	Logger       *slog.Logger             // optional
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

var ErrNilStore = errors.New("server: snapshot store is nil")

// Start serves the published snapshot over HTTP and WebSocket.
// It returns the *http.Server, a channel carrying a terminal error (if
// any), and an error for immediate startup issues. The server stops
// when the supplied context is cancelled.
func Start(ctx context.Context, cfg Config) (*http.Server, <-chan error, error) {
	if cfg.Store == nil {
		return nil, nil, ErrNilStore
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8090"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", statusHandler(cfg.Store))
	mux.HandleFunc("/api/status/ws", statusWSHandler(cfg.Store, cfg.Logger))
	mux.HandleFunc("/api/refresh", refreshHandler(cfg.Refresh))
	if len(cfg.Thermal) > 0 {
		mux.HandleFunc("/api/thermal", thermalHandler(cfg.Thermal))
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 10*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}

	errCh := make(chan error, 1)

	go func() {
		cfg.Logger.Info("status API listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return srv, errCh, nil
}

func durationOr(v, d time.Duration) time.Duration {
	if v <= 0 {
		return d
	}
	return v
}
