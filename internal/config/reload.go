package config

import (
	"context"
	"log/slog"

	"github.com/dshills/helixedit/internal/config/watcher"
)

// Watch reloads the configuration at path whenever it changes and passes
// every successfully loaded configuration to apply. Invalid files are
// logged and skipped, keeping the previous configuration in force. Watch
// blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger, apply func(Config)) error {
	w, err := watcher.New(path, watcher.WithErrorHandler(func(err error) {
		logger.Warn("config watcher error", "path", path, "err", err)
	}))
	if err != nil {
		return err
	}
	defer w.Close()

	w.OnChange(func(p string) {
		cfg, err := Load(p)
		if err != nil {
			logger.Warn("config reload failed", "path", p, "err", err)
			return
		}
		logger.Info("config reloaded", "path", p)
		apply(cfg)
	})
	return w.Run(ctx)
}
