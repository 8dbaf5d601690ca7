// Package blob stores design backups as objects.
//
// Backends share a small S3-like interface: a local directory, process
// memory, or an S3 compatible bucket through aws-sdk-go-v2.
package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/helixedit/internal/config"
)

// Errors returned by blob stores.
var (
	ErrNotFound      = errors.New("blob: not found")
	ErrInvalidKey    = errors.New("blob: invalid key")
	ErrUnknownDriver = errors.New("blob: unknown driver")
)

// Driver identifies a blob backend.
type Driver string

// Drivers.
const (
	DriverFilesystem Driver = "fs"
	DriverMemory     Driver = "memory"
	DriverS3         Driver = "s3"
)

// Info describes a stored object.
type Info struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Store is implemented by every backend.
type Store interface {
	Put(ctx context.Context, key string, data []byte) (Info, error)
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns the objects under prefix sorted by key.
	List(ctx context.Context, prefix string) ([]Info, error)
	Delete(ctx context.Context, key string) error
	Driver() Driver
}

// Open returns the store selected by cfg, or nil when backups are
// disabled.
func Open(ctx context.Context, cfg config.BackupConfig) (Store, error) {
	switch cfg.Driver {
	case "none", "":
		return nil, nil
	case string(DriverFilesystem):
		return NewFilesystem(cfg.Dir)
	case string(DriverMemory):
		return NewMemory(), nil
	case string(DriverS3):
		return NewS3(ctx, S3Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			PathStyle:       cfg.PathStyle,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
