// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typecrab/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Test     TestConfig `toml:"test"`
	Scheme   *string    `toml:"scheme"`
	LogLevel *string    `toml:"log-level"`
}

// TestConfig maps test-related settings. Nil fields are unset.
type TestConfig struct {
	Mode        *string `toml:"mode"`
	Lang        *string `toml:"lang"`
	Count       *int    `toml:"count"`
	Time        *int    `toml:"time"`
	Punctuation *bool   `toml:"punctuation"`
	Numbers     *bool   `toml:"numbers"`
	Strict      *bool   `toml:"strict"`
	Death       *bool   `toml:"death"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("%w: config path is empty", model.ErrConfig)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("%w: failed to decode config: %v", model.ErrConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("%w: unknown config key %q", model.ErrConfig, undecoded[0].String())
	}
	return cfg, nil
}
