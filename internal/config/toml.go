// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Crack CrackConfig `toml:"crack"`
}

// CrackConfig maps analysis settings. Nil fields were not set in the file.
type CrackConfig struct {
	Lang         *string  `toml:"lang"`
	MaxKeyLength *int     `toml:"max-key-length"`
	Statistic    *string  `toml:"statistic"`
	Method       *string  `toml:"method"`
	Workers      *int     `toml:"workers"`
	TieTolerance *float64 `toml:"tolerance"`
	ReducePeriod *bool    `toml:"reduce"`
	Candidates   *int     `toml:"candidates"`
	Wordlist     *string  `toml:"wordlist"`
	Preview      *int     `toml:"preview"`
	OutDir       *string  `toml:"out-dir"`
	NoWrite      *bool    `toml:"no-write"`
	NoHistory    *bool    `toml:"no-history"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
