// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// ErrConfigValidation is returned when merged settings fail validation.
var ErrConfigValidation = errors.New("config validation error")

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Render RenderFileConfig `toml:"render"`
	Export ExportFileConfig `toml:"export"`
}

// RenderFileConfig maps loading and drawing settings.
type RenderFileConfig struct {
	Log        *string  `toml:"log"`
	Source     *string  `toml:"source"`
	Scale      *float64 `toml:"scale"`
	Unit       *string  `toml:"unit"`
	Permissive *bool    `toml:"permissive"`
	Marker     *string  `toml:"marker"`
	Multiplier *int     `toml:"multiplier"`
	Azimuth    *float64 `toml:"azimuth"`
	Elevation  *float64 `toml:"elevation"`
	LogLevel   *string  `toml:"log-level"`
}

// ExportFileConfig maps figure export settings.
type ExportFileConfig struct {
	Width  *float64 `toml:"width"`
	Height *float64 `toml:"height"`
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

// Validate checks struct tags on merged settings.
func Validate(cfg any) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return nil
}
