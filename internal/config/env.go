package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HELIXEDIT_"

type envSetter func(c *Config, v string) error

func setString(field func(*Config) *string) envSetter {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setInt(field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func setBool(field func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// envMapping maps variable names, without prefix, to config fields.
var envMapping = map[string]envSetter{
	"HISTORY_MAX_ENTRIES":    setInt(func(c *Config) *int { return &c.History.MaxEntries }),
	"LOG_LEVEL":              setString(func(c *Config) *string { return &c.Log.Level }),
	"LOG_FORMAT":             setString(func(c *Config) *string { return &c.Log.Format }),
	"STORE_DRIVER":           setString(func(c *Config) *string { return &c.Store.Driver }),
	"STORE_DSN":              setString(func(c *Config) *string { return &c.Store.DSN }),
	"BACKUP_DRIVER":          setString(func(c *Config) *string { return &c.Backup.Driver }),
	"BACKUP_DIR":             setString(func(c *Config) *string { return &c.Backup.Dir }),
	"BACKUP_BUCKET":          setString(func(c *Config) *string { return &c.Backup.Bucket }),
	"BACKUP_REGION":          setString(func(c *Config) *string { return &c.Backup.Region }),
	"BACKUP_ENDPOINT":        setString(func(c *Config) *string { return &c.Backup.Endpoint }),
	"BACKUP_PREFIX":          setString(func(c *Config) *string { return &c.Backup.Prefix }),
	"BACKUP_EVERY":           setInt(func(c *Config) *int { return &c.Backup.Every }),
	"BACKUP_PATH_STYLE":      setBool(func(c *Config) *bool { return &c.Backup.PathStyle }),
	"BACKUP_ACCESS_KEY_ID":   setString(func(c *Config) *string { return &c.Backup.AccessKeyID }),
	"BACKUP_SECRET_KEY":      setString(func(c *Config) *string { return &c.Backup.SecretAccessKey }),
	"METRICS_ENABLED":        setBool(func(c *Config) *bool { return &c.Metrics.Enabled }),
	"METRICS_TEXTFILE":       setString(func(c *Config) *string { return &c.Metrics.Textfile }),
	"SCRIPT_CALL_STACK_SIZE": setInt(func(c *Config) *int { return &c.Script.CallStackSize }),
	"SCRIPT_TIMEOUT": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Script.Timeout = Duration{d}
		return nil
	},
}

// ApplyEnv overrides cfg with the environment variables named prefix
// followed by a key of the mapping, e.g. HELIXEDIT_LOG_LEVEL. Empty values
// are applied like any other.
func ApplyEnv(cfg *Config, prefix string) error {
	for name, set := range envMapping {
		v, ok := os.LookupEnv(prefix + name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, prefix, name, err)
		}
	}
	return nil
}
