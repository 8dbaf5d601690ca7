// Package app wires the editing engine to its configuration, persistence,
// backups, metrics and scripting, and exposes the commands used by the
// command line.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/helixedit/internal/blob"
	"github.com/dshills/helixedit/internal/config"
	"github.com/dshills/helixedit/internal/dispatcher"
	"github.com/dshills/helixedit/internal/engine"
	"github.com/dshills/helixedit/internal/event"
	"github.com/dshills/helixedit/internal/script"
	"github.com/dshills/helixedit/internal/store"
)

// DefaultName is the design name used when none is given.
const DefaultName = "untitled"

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. A missing file means defaults.
	ConfigPath string

	// Name is the design the application works on.
	Name string

	// Config, when set, is used instead of loading ConfigPath.
	Config *config.Config

	// Out receives script output. Defaults to stdout.
	Out io.Writer

	// LogOutput receives log records. Defaults to stderr.
	LogOutput io.Writer
}

// Application is the central coordinator for one design.
type Application struct {
	mu sync.Mutex

	opts Options
	name string
	cfg  config.Config

	logger   *slog.Logger
	level    *slog.LevelVar
	registry *prometheus.Registry
	metrics  *dispatcher.Metrics
	bus      *event.Bus
	store    store.Store
	blobs    blob.Store
	backup   *blob.Backup
	editor   *engine.Editor
	scripts  *script.Runner

	// revision is the store revision the editor content derives from.
	revision int
	closed   bool
}

// New creates an Application and starts its components.
func New(ctx context.Context, opts Options) (*Application, error) {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	app := &Application{opts: opts, name: opts.Name}
	if err := newBootstrapper(app).bootstrap(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// Name returns the design name.
func (app *Application) Name() string { return app.name }

// Config returns the active configuration.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger { return app.logger }

// Editor returns the editor.
func (app *Application) Editor() *engine.Editor { return app.editor }

// Store returns the revision store.
func (app *Application) Store() store.Store { return app.store }

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus { return app.bus }

// Registry returns the metrics registry.
func (app *Application) Registry() *prometheus.Registry { return app.registry }

// Watch reloads the configuration file when it changes, until ctx is
// done. Only settings that are safe to change at runtime are applied: the
// log level and the undo history size.
func (app *Application) Watch(ctx context.Context) error {
	if app.opts.ConfigPath == "" {
		<-ctx.Done()
		return ctx.Err()
	}
	return config.Watch(ctx, app.opts.ConfigPath, app.logger, func(cfg config.Config) {
		app.Reconfigure(ctx, cfg)
	})
}

// Reconfigure applies the runtime-changeable parts of cfg.
func (app *Application) Reconfigure(ctx context.Context, cfg config.Config) {
	app.mu.Lock()
	old := app.cfg
	app.cfg.Log.Level = cfg.Log.Level
	app.cfg.History.MaxEntries = cfg.History.MaxEntries
	app.mu.Unlock()

	if cfg.Log.Level != old.Log.Level {
		if err := app.level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			app.logger.Warn("ignoring log level", "level", cfg.Log.Level, "err", err)
		}
	}
	if cfg.History.MaxEntries != old.History.MaxEntries {
		app.editor.SetMaxUndoEntries(cfg.History.MaxEntries)
	}
	_ = app.bus.Publish(ctx, event.New(event.TopicConfigReloaded, event.ConfigReloaded{Path: app.opts.ConfigPath}, "app"))
}

// Close flushes metrics and releases the store.
func (app *Application) Close() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return ErrClosed
	}
	app.closed = true
	textfile := app.cfg.Metrics.Textfile
	app.mu.Unlock()

	var errs []error
	if textfile != "" {
		errs = append(errs, app.writeMetrics(textfile))
	}
	if app.store != nil {
		errs = append(errs, app.store.Close())
	}
	return errors.Join(errs...)
}
