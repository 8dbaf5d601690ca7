package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/helixedit/internal/config/loader"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the whole configuration.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
	Backup  BackupConfig  `toml:"backup" yaml:"backup"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
	Script  ScriptConfig  `toml:"script" yaml:"script"`
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
}

// StoreConfig selects where design revisions are saved.
type StoreConfig struct {
	// Driver is memory, sqlite or postgres.
	Driver string `toml:"driver" yaml:"driver"`
	DSN    string `toml:"dsn" yaml:"dsn"`
}

// BackupConfig selects where design backups are written.
type BackupConfig struct {
	// Driver is none, fs, memory or s3.
	Driver   string `toml:"driver" yaml:"driver"`
	Dir      string `toml:"dir" yaml:"dir"`
	Bucket   string `toml:"bucket" yaml:"bucket"`
	Region   string `toml:"region" yaml:"region"`
	Endpoint string `toml:"endpoint" yaml:"endpoint"`
	Prefix   string `toml:"prefix" yaml:"prefix"`

	// PathStyle addresses buckets by path, as MinIO expects.
	PathStyle bool `toml:"path_style" yaml:"path_style"`

	// Static credentials; the default AWS chain is used when empty.
	AccessKeyID     string `toml:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key" yaml:"secret_access_key"`

	// Every is the number of undo steps between two backups.
	Every int `toml:"every" yaml:"every"`
}

// MetricsConfig controls the Prometheus registry.
type MetricsConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Textfile, when set, receives the metrics in text format on exit.
	Textfile string `toml:"textfile" yaml:"textfile"`
}

// ScriptConfig limits Lua scripts.
type ScriptConfig struct {
	Timeout       Duration `toml:"timeout" yaml:"timeout"`
	CallStackSize int      `toml:"call_stack_size" yaml:"call_stack_size"`
}

// Duration is a time.Duration written as "30s" in files.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxEntries: 1000},
		Log:     LogConfig{Level: "info", Format: "text"},
		Store:   StoreConfig{Driver: "sqlite", DSN: "helixedit.db"},
		Backup:  BackupConfig{Driver: "none", Dir: "backups", Prefix: "helixedit", Every: 20},
		Script:  ScriptConfig{Timeout: Duration{30 * time.Second}, CallStackSize: 256},
	}
}

// Load returns the defaults overridden by the file at path, when it
// exists, and then by the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := loader.DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg, EnvPrefix); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func oneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %s, got %q", ErrInvalidConfig, field, strings.Join(allowed, "|"), v)
}

// Validate checks enumerated fields and bounds.
func (c Config) Validate() error {
	errs := []error{
		oneOf("log.level", strings.ToLower(c.Log.Level), "debug", "info", "warn", "error"),
		oneOf("log.format", c.Log.Format, "text", "json"),
		oneOf("store.driver", c.Store.Driver, "memory", "sqlite", "postgres"),
		oneOf("backup.driver", c.Backup.Driver, "none", "fs", "memory", "s3"),
	}
	if c.History.MaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("%w: history.max_entries must be positive", ErrInvalidConfig))
	}
	if c.Store.Driver != "memory" && c.Store.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: store.dsn is required for %s", ErrInvalidConfig, c.Store.Driver))
	}
	if c.Backup.Driver == "s3" && c.Backup.Bucket == "" {
		errs = append(errs, fmt.Errorf("%w: backup.bucket is required for s3", ErrInvalidConfig))
	}
	if c.Backup.Every < 0 {
		errs = append(errs, fmt.Errorf("%w: backup.every must not be negative", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
