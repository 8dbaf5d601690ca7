// Package config provides the configuration of helixedit.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← HELIXEDIT_*, highest priority
//	├─────────────────────────────┤
//	│  2. Config File             │  ← .toml, .yaml or .yml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: configuration file decoding (TOML, YAML) with positioned errors
//   - watcher: file watching for live reload
//
// # Basic Usage
//
//	cfg, err := config.Load("helixedit.toml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.History.MaxEntries)
//
// A missing file is not an error: the defaults and the environment apply.
package config
