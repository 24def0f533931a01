package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/comalice/scouter"
	"github.com/comalice/scouter/internal/production"
	"github.com/comalice/scouter/realtime"
	"github.com/prometheus/client_golang/prometheus"
)

// snapshotName is the file the shutdown snapshot is stored under in -state-dir.
const snapshotName = "scouter"

type config struct {
	addr           string
	configPath     string
	logLevel       string
	forceStart     bool
	stateDir       string
	exitOnShutdown bool
}

type application struct {
	config          config
	logger          *slog.Logger
	loop            *realtime.Loop
	controller      *scouter.Controller
	frames          chan production.PublishedFrame
	publisher       *production.FramePublisher
	viewers         *viewerHub
	persister       production.Persister
	visualizer      *production.DefaultVisualizer
	metricsRegistry *prometheus.Registry

	exit     chan struct{}
	exitOnce sync.Once
}

func main() {
	var cfg config

	flag.StringVar(&cfg.addr, "addr", ":8080", "HTTP listen address")
	flag.StringVar(&cfg.configPath, "config", "", "Path to a YAML ticker config")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "Logging level (trace|debug|info|warning|error)")
	flag.BoolVar(&cfg.forceStart, "force-start", false, "Tick even when no viewer is connected")
	flag.StringVar(&cfg.stateDir, "state-dir", "", "Directory for the shutdown snapshot (disabled if empty)")
	flag.BoolVar(&cfg.exitOnShutdown, "exit-on-shutdown", false, "Exit the process when the shutdown threshold is crossed")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.logLevel)}))

	tickerCfg := scouter.DefaultConfig()
	if cfg.configPath != "" {
		var err error
		tickerCfg, err = scouter.LoadConfig(cfg.configPath)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}

	app, err := newApplication(context.Background(), cfg, tickerCfg, logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer app.close()

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newApplication(ctx context.Context, cfg config, tickerCfg scouter.Config, logger *slog.Logger) (*application, error) {
	registry := prometheus.NewRegistry()
	metrics, err := production.NewPromMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	frames := make(chan production.PublishedFrame, 64)
	app := &application{
		config:          cfg,
		logger:          logger,
		loop:            realtime.NewLoop(realtime.Config{Logger: logger}),
		frames:          frames,
		publisher:       production.NewFramePublisher(frames),
		visualizer:      &production.DefaultVisualizer{},
		metricsRegistry: registry,
		exit:            make(chan struct{}),
	}
	app.viewers = newViewerHub(logger, app.onFirstViewer, app.onLastViewer)

	forceStart := cfg.forceStart
	if cfg.stateDir != "" {
		p, err := production.NewYAMLPersister(cfg.stateDir)
		if err != nil {
			return nil, err
		}
		app.persister = p

		snap, err := p.Load(ctx, snapshotName)
		switch {
		case err == nil:
			logger.Info("restored snapshot", "session", snap.Session, "force_start", snap.ForceStart)
			forceStart = forceStart || snap.ForceStart
		case !errors.Is(err, os.ErrNotExist):
			logger.Warn("ignoring snapshot", "error", err)
		}
	}

	if err := app.loop.Start(ctx); err != nil {
		return nil, err
	}

	var newErr error
	err = app.loop.Do(ctx, func() {
		ctl, err := scouter.New(app.loop, app.publisher, scouter.ShutdownFunc(app.onShutdown),
			scouter.WithConfig(tickerCfg),
			scouter.WithLogger(logger),
			scouter.WithMetrics(metrics),
		)
		if err != nil {
			newErr = err
			return
		}
		app.controller = ctl
		ctl.SetForceStart(forceStart)
		ctl.Start()
	})
	if err == nil {
		err = newErr
	}
	if err != nil {
		app.loop.Stop()
		return nil, fmt.Errorf("controller: %w", err)
	}

	go app.viewers.broadcast(frames)

	return app, nil
}

// close stops the loop before closing the frame channel; Render only runs on the loop.
func (app *application) close() {
	app.loop.Stop()
	app.publisher.Close()
	app.viewers.closeAll()
}

func (app *application) onFirstViewer() {
	if err := app.loop.Post(func() { app.controller.OnHostVisibilityChanged(true) }); err != nil {
		app.logger.Error("post visibility", "error", err)
	}
}

func (app *application) onLastViewer() {
	if err := app.loop.Post(app.controller.OnHostDetached); err != nil {
		app.logger.Error("post detach", "error", err)
	}
}

// onShutdown runs on the loop when the controller crosses its shutdown threshold.
// The viewers are the hosting surface, so destroying it means dropping all of them.
func (app *application) onShutdown() {
	snap := app.controller.Snapshot()
	app.logger.Info("shutdown requested", "session", snap.Session, "elapsed", snap.Elapsed, "viewers", app.viewers.count())

	if app.persister != nil {
		if err := app.persister.Save(context.Background(), snapshotName, snap); err != nil {
			app.logger.Error("save snapshot", "error", err)
		}
	}

	if app.config.exitOnShutdown {
		app.exitOnce.Do(func() { close(app.exit) })
		return
	}
	app.viewers.closeAll()
}
