package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/helixedit/internal/config"
	"github.com/dshills/helixedit/internal/engine"
)

// Errors returned by Run.
var (
	ErrTimeout = errors.New("script: timeout")
	ErrScript  = errors.New("script: error")
)

// Defaults.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultCallStackSize = 256
)

// Runner executes scripts. A Runner holds no Lua state between runs and
// may be shared.
type Runner struct {
	timeout       time.Duration
	callStackSize int
	out           io.Writer
	logger        *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout bounds the wall-clock time of a run. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithCallStackSize bounds the Lua call depth.
func WithCallStackSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.callStackSize = n
		}
	}
}

// WithOutput redirects print.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		timeout:       DefaultTimeout,
		callStackSize: DefaultCallStackSize,
		out:           os.Stdout,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig returns the options matching cfg.
func FromConfig(cfg config.ScriptConfig) []Option {
	return []Option{WithTimeout(cfg.Timeout.Duration), WithCallStackSize(cfg.CallStackSize)}
}

// Result summarises a run.
type Result struct {
	// Applied counts the edit requests the script issued.
	Applied  int
	Duration time.Duration
}

// RunFile runs the script at path.
func (r *Runner) RunFile(ctx context.Context, ed *engine.Editor, path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return r.Run(ctx, ed, filepath.Base(path), string(src))
}

// Run executes source as a single transaction on ed. The label of the
// resulting undo step is "script <name>".
func (r *Runner) Run(ctx context.Context, ed *engine.Editor, name, source string) (Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs:  true,
		CallStackSize: r.callStackSize,
	})
	defer L.Close()
	openSafeLibraries(L)
	L.SetContext(ctx)

	api := &api{ctx: ctx, ed: ed, out: r.out}
	api.install(L)

	start := time.Now()
	err := ed.Transaction(ctx, "script "+name, func() error {
		fn, err := L.Load(strings.NewReader(source), name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrScript, err)
		}
		L.Push(fn)
		return r.call(L, api)
	})
	res := Result{Applied: api.applied, Duration: time.Since(start)}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", ErrTimeout, r.timeout, err)
		}
		r.logger.Info("script failed", "script", name, "applied", res.Applied, "err", err)
		return res, err
	}
	r.logger.Debug("script finished", "script", name, "applied", res.Applied, "elapsed", res.Duration)
	return res, nil
}

// call runs the function on top of the stack. An edit error raised
// through the api keeps its identity so callers can match it with
// errors.Is.
func (r *Runner) call(L *lua.LState, a *api) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: panic: %v", ErrScript, p)
		}
	}()
	if err := L.PCall(0, 0, nil); err != nil {
		if a.lastErr != nil && strings.Contains(err.Error(), a.lastErr.Error()) {
			return fmt.Errorf("%w: %w", ErrScript, a.lastErr)
		}
		return fmt.Errorf("%w: %v", ErrScript, err)
	}
	return nil
}

// openSafeLibraries opens the libraries that cannot reach the host.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}
