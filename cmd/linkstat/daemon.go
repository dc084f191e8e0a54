// cmd/linkstat/daemon.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/linkstat/internal/config"
	"github.com/tamzrod/linkstat/internal/history"
	"github.com/tamzrod/linkstat/internal/notify"
	"github.com/tamzrod/linkstat/internal/permission"
	"github.com/tamzrod/linkstat/internal/resolve"
	"github.com/tamzrod/linkstat/internal/sensor/sysfs"
	"github.com/tamzrod/linkstat/internal/sensor/thermal"
	"github.com/tamzrod/linkstat/internal/server"
	"github.com/tamzrod/linkstat/internal/status"
	"github.com/tamzrod/linkstat/internal/watch"
)

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

// wirelessResolver bundles the pieces of the wireless resolution chain.
type wirelessResolver struct {
	store     *status.Store
	coalescer *resolve.Coalescer
	monitor   *watch.Monitor
}

// buildWireless wires the full wireless strategy chain:
// direct sysfs query, general path inference, class-filtered path
// inference, then the name-matching heuristic.
func buildWireless(cfg *config.Config, hist *history.Log, logger *slog.Logger) *wirelessResolver {
	w := cfg.Resolver.Wireless

	api := &sysfs.Wireless{
		Interface:     w.Interface,
		Root:          w.SysfsRoot,
		WirelessStats: w.WirelessStats,
		NameFile:      w.NameFile,
		Security:      w.Security,
	}

	store := status.NewStore()

	// The coalescer and tracker do not exist yet when these closures
	// are built; runs cannot start before both do.
	var coalescer *resolve.Coalescer
	var tracker *permission.Tracker

	tracker = permission.NewTracker(permission.Config{
		Request: func() {
			granted, denied := sysfs.ProbeNameAccess(w.NameFile)
			switch {
			case granted:
				tracker.Observe(permission.Granted)
			case denied:
				tracker.Observe(permission.Denied)
			}
		},
		Retrigger: func() {
			coalescer.Trigger("permission change")
		},
		RetriggerDelay: ms(cfg.Resolver.Permission.RetriggerDelayMs),
	})

	monitor := watch.NewMonitor(watch.Config{
		Root:          w.SysfsRoot,
		StatePath:     w.StatePath,
		Interval:      ms(w.PollIntervalMs),
		ClassPatterns: w.ClassPatterns,
		OnChange: func() {
			coalescer.Trigger("path change")
		},
		Logger: logger,
	})

	pipeline := &resolve.Pipeline{
		Strategies: []resolve.Strategy{
			&resolve.DirectQuery{
				API:         api,
				SignalFloor: *w.SignalFloor,
				SignalCeil:  *w.SignalCeil,
			},
			&resolve.PathInference{
				Label:       "path",
				Monitor:     monitor,
				Wait:        ms(w.PathWaitMs),
				SignalFloor: *w.SignalFloor,
				SignalCeil:  *w.SignalCeil,
			},
			&resolve.PathInference{
				Label:       "path-filtered",
				Monitor:     watch.ClassOnly{Source: monitor},
				Wait:        ms(w.PathWaitMs),
				SignalFloor: *w.SignalFloor,
				SignalCeil:  *w.SignalCeil,
			},
			&resolve.HeuristicMatch{
				Patterns: w.ClassPatterns,
			},
		},
		Permission: tracker,
		Store:      store,
		Logger:     logger,
	}
	if hist != nil {
		pipeline.History = hist
	}

	coalescer = resolve.NewCoalescer(pipeline, logger)

	return &wirelessResolver{
		store:     store,
		coalescer: coalescer,
		monitor:   monitor,
	}
}

func runDaemon(cfgPath string, verbose bool) error {
	logger := newLogger(verbose)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hist *history.Log
	if cfg.Resolver.History.Path != "" {
		hist, err = history.Open(cfg.Resolver.History.Path)
		if err != nil {
			return err
		}
		defer hist.Close()
	}

	wl := buildWireless(cfg, hist, logger)
	go wl.monitor.Run(ctx)
	go wl.coalescer.Run(ctx)

	// --------------------
	// Thermal units (fail fast at startup, like any misconfiguration)
	// --------------------

	thermalStores := make(map[string]*status.Store)
	for _, t := range cfg.Resolver.Thermal {
		client, err := thermal.New(thermal.Config{
			Endpoint:   t.Endpoint,
			UnitID:     t.UnitID,
			Register:   t.Register,
			Scale:      t.Scale,
			SensorName: t.ID,
			Timeout:    ms(t.TimeoutMs),
		})
		if err != nil {
			return fmt.Errorf("thermal unit %q: %w", t.ID, err)
		}
		defer client.Close()

		tstore := status.NewStore()
		tpipe := &resolve.Pipeline{
			Strategies: []resolve.Strategy{
				&resolve.DirectQuery{
					API:         client,
					SignalFloor: *t.FloorC,
					SignalCeil:  *t.CeilC,
				},
			},
			Store:  tstore,
			Logger: logger,
		}
		if hist != nil {
			tpipe.History = hist
		}
		tcoal := resolve.NewCoalescer(tpipe, logger)
		go tcoal.Run(ctx)
		go pollLoop(ctx, tcoal, ms(t.IntervalMs))

		thermalStores[t.ID] = tstore
	}

	// --------------------
	// Downstream consumers
	// --------------------

	if d := notify.NewDispatcher(webhookConfigs(cfg), logger); d != nil {
		go d.Run(ctx, wl.store)
	}

	if addr := cfg.Resolver.Server.ListenAddr; addr != "" {
		_, errCh, err := server.Start(ctx, server.Config{
			ListenAddr: addr,
			Store:      wl.store,
			Thermal:    thermalStores,
			Refresh:    wl.coalescer.Trigger,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		go func() {
			if err := <-errCh; err != nil {
				logger.Error("status API failed", "error", err)
			}
		}()
	}

	wl.coalescer.Trigger("startup")
	logger.Info("linkstat running", "interface", cfg.Resolver.Wireless.Interface)

	<-ctx.Done()
	logger.Info("shutdown signal received")
	return nil
}

func runOnce(cfgPath string, verbose bool) error {
	logger := newLogger(verbose)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	wl := buildWireless(cfg, nil, logger)

	// The monitor is primed with the current interface state at
	// construction, and subscriptions replay it; no background run
	// loop is needed for a single resolution.
	snap := resolveOnce(wl)

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func resolveOnce(wl *wirelessResolver) *status.Snapshot {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, unwatch := wl.store.Watch()
	defer unwatch()

	go wl.coalescer.Run(ctx)
	wl.coalescer.Trigger("one-shot")

	<-ch
	return wl.store.Load()
}

// pollLoop drives periodic re-resolution for clock-driven sources.
func pollLoop(ctx context.Context, c *resolve.Coalescer, interval time.Duration) {
	c.Trigger("startup")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Trigger("poll")
		}
	}
}

func webhookConfigs(cfg *config.Config) []notify.WebhookConfig {
	out := make([]notify.WebhookConfig, 0, len(cfg.Resolver.Webhooks))
	for _, wh := range cfg.Resolver.Webhooks {
		out = append(out, notify.WebhookConfig{
			URL:     wh.URL,
			Events:  wh.Events,
			Headers: wh.Headers,
		})
	}
	return out
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
