package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoBackup indicates backups are disabled in the configuration.
	ErrNoBackup = errors.New("backups are disabled")

	// ErrClosed indicates the application was already closed.
	ErrClosed = errors.New("application closed")
)

// ComponentError reports a component that failed to start.
type ComponentError struct {
	Component string
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }

// OperationError represents an error that occurred during a command on a
// design.
type OperationError struct {
	Op     string // e.g. "open", "save", "apply"
	Target string // design name or file path
	Err    error
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error { return e.Err }

func opError(op, target string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Target: target, Err: err}
}
