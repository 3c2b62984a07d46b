// Package config loads the engine's constructor-time knobs from a TOML
// file, falling back to the compiled-in defaults when no file is given or
// a key is absent.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/hydrochess/search/internal/engine"
)

// File mirrors the on-disk TOML layout:
//
//	[search]
//	tt_size_mb = 16
//	timeout_ms = 10000
type File struct {
	Search struct {
		TTSizeMB  int `toml:"tt_size_mb"`
		TimeoutMS int `toml:"timeout_ms"`
	} `toml:"search"`
}

// Load reads path and merges it over the compiled-in defaults. An empty
// path is not an error — the defaults are returned as-is; a path that
// cannot be read or decoded is.
func Load(path string) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return cfg, err
	}

	if f.Search.TTSizeMB > 0 {
		cfg.TTSizeMB = f.Search.TTSizeMB
	}
	if f.Search.TimeoutMS > 0 {
		cfg.SearchTimeoutMS = f.Search.TimeoutMS
	}
	return cfg, nil
}
