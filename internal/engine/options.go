package engine

import (
	"context"
	"log/slog"

	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/dispatcher"
	"github.com/dshills/helixedit/internal/engine/history"
	"github.com/dshills/helixedit/internal/event"
	"github.com/dshills/helixedit/internal/session"
)

// DefaultMaxUndoEntries bounds the undo stack.
const DefaultMaxUndoEntries = history.DefaultMaxEntries

// PushHook is called, outside the editor lock, after each new undo step
// with the design and session state that became current.
type PushHook func(ctx context.Context, d design.Design, st session.State)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithDesign sets the initial design.
func WithDesign(d design.Design) Option {
	return func(e *Editor) {
		e.initDesign = d
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithBus sets the bus receiving editor events.
func WithBus(b *event.Bus) Option {
	return func(e *Editor) {
		e.bus = b
	}
}

// WithMetrics records every operation on m.
func WithMetrics(m *dispatcher.Metrics) Option {
	return func(e *Editor) {
		e.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPushHook registers fn to run after each new undo step.
func WithPushHook(fn PushHook) Option {
	return func(e *Editor) {
		if fn != nil {
			e.pushHooks = append(e.pushHooks, fn)
		}
	}
}
