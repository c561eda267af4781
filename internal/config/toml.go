// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Serie  SerieConfig  `toml:"serie"`
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
}

// SerieConfig maps pipeline options.
type SerieConfig struct {
	FillDates  *bool   `toml:"fill-null-date-values"`
	Cumulative *bool   `toml:"cumulative"`
	Grouped    *bool   `toml:"grouped"`
	Sort       *bool   `toml:"sort"`
	Order      *string `toml:"order"`
	Direction  *string `toml:"direction"`
}

// InputConfig maps source column settings.
type InputConfig struct {
	XColumn     *string `toml:"x-column"`
	YColumn     *string `toml:"y-column"`
	LabelColumn *string `toml:"label-column"`
	XType       *string `toml:"x-type"`
	DateFormat  *string `toml:"date-format"`
	Sheet       *string `toml:"sheet"`
	Table       *string `toml:"table"`
}

// OutputConfig maps output settings.
type OutputConfig struct {
	Format  *string `toml:"format"`
	Pretty  *bool   `toml:"pretty"`
	Summary *bool   `toml:"summary"`
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
