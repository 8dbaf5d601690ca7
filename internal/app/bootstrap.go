package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dshills/helixedit/internal/blob"
	"github.com/dshills/helixedit/internal/config"
	"github.com/dshills/helixedit/internal/dispatcher"
	"github.com/dshills/helixedit/internal/engine"
	"github.com/dshills/helixedit/internal/event"
	"github.com/dshills/helixedit/internal/logging"
	"github.com/dshills/helixedit/internal/script"
	"github.com/dshills/helixedit/internal/session"
	"github.com/dshills/helixedit/internal/store"
)

// bootstrapper starts components in dependency order and releases the
// started ones when a later step fails.
type bootstrapper struct {
	app     *Application
	cleanup []func()
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{app: app}
}

func (b *bootstrapper) bootstrap(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"config", b.initConfig},
		{"logging", b.initLogging},
		{"metrics", b.initMetrics},
		{"event bus", b.initEventBus},
		{"store", b.initStore},
		{"backup", b.initBackup},
		{"editor", b.initEditor},
		{"scripts", b.initScripts},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			for i := len(b.cleanup) - 1; i >= 0; i-- {
				b.cleanup[i]()
			}
			return &ComponentError{Component: step.name, Err: err}
		}
	}
	b.app.logger.Debug("application started", "design", b.app.name,
		"store", b.app.cfg.Store.Driver, "backup", b.app.cfg.Backup.Driver)
	return nil
}

func (b *bootstrapper) initConfig(context.Context) error {
	if b.app.opts.Config != nil {
		cfg := *b.app.opts.Config
		if err := cfg.Validate(); err != nil {
			return err
		}
		b.app.cfg = cfg
		return nil
	}
	cfg, err := config.Load(b.app.opts.ConfigPath)
	if err != nil {
		return err
	}
	b.app.cfg = cfg
	return nil
}

func (b *bootstrapper) initLogging(context.Context) error {
	logger, level, err := logging.New(b.app.opts.LogOutput, b.app.cfg.Log)
	if err != nil {
		return err
	}
	b.app.logger = logger.With("design", b.app.name)
	b.app.level = level
	return nil
}

func (b *bootstrapper) initMetrics(context.Context) error {
	reg := prometheus.NewRegistry()
	b.app.registry = reg
	if !b.app.cfg.Metrics.Enabled {
		return nil
	}
	reg.MustRegister(collectors.NewGoCollector())
	b.app.metrics = dispatcher.NewMetrics(reg)
	return nil
}

func (b *bootstrapper) initEventBus(context.Context) error {
	b.app.bus = event.NewBus(event.WithLogger(b.app.logger))
	if b.app.cfg.Metrics.Enabled {
		return newEventCounter(b.app.registry).subscribe(b.app.bus)
	}
	return nil
}

func (b *bootstrapper) initStore(ctx context.Context) error {
	s, err := store.Open(ctx, b.app.cfg.Store)
	if err != nil {
		return err
	}
	b.app.store = s
	b.cleanup = append(b.cleanup, func() { _ = s.Close() })
	return nil
}

func (b *bootstrapper) initBackup(ctx context.Context) error {
	cfg := b.app.cfg.Backup
	bs, err := blob.Open(ctx, cfg)
	if err != nil || bs == nil {
		return err
	}
	b.app.blobs = bs
	b.app.backup = blob.NewBackup(bs, b.app.name,
		blob.WithPrefix(cfg.Prefix),
		blob.WithEvery(cfg.Every),
		blob.WithLogger(b.app.logger),
		blob.WithBus(b.app.bus),
	)
	return nil
}

func (b *bootstrapper) initEditor(context.Context) error {
	opts := []engine.Option{
		engine.WithMaxUndoEntries(b.app.cfg.History.MaxEntries),
		engine.WithBus(b.app.bus),
		engine.WithMetrics(b.app.metrics),
		engine.WithLogger(b.app.logger),
	}
	if b.app.backup != nil {
		opts = append(opts, engine.WithPushHook(b.app.backup.OnPush))
	}
	b.app.editor = engine.New(opts...)
	b.app.editor.OnStateChange(func(from, to session.State) {
		b.app.logger.Debug("session state changed", "from", from.Name(), "to", to.Name())
	})
	return nil
}

func (b *bootstrapper) initScripts(context.Context) error {
	opts := append(script.FromConfig(b.app.cfg.Script),
		script.WithOutput(b.app.opts.Out),
		script.WithLogger(b.app.logger),
	)
	b.app.scripts = script.New(opts...)
	return nil
}
