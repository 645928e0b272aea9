// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Shuffle ShuffleConfig `toml:"shuffle"`
	Display DisplayConfig `toml:"display"`
	Content ContentConfig `toml:"content"`
	Visits  VisitsConfig  `toml:"visits"`
}

// ShuffleConfig maps heading reveal settings.
type ShuffleConfig struct {
	Alphabet   *string `toml:"alphabet"`
	DurationMs *int    `toml:"duration-ms"`
	Direction  *string `toml:"direction"`
}

// DisplayConfig maps frame rate and scrolling settings.
type DisplayConfig struct {
	FPS           *int `toml:"fps"`
	GlideMsPerRow *int `toml:"glide-ms-per-row"`
	GlideMaxMs    *int `toml:"glide-max-ms"`
}

// ContentConfig points at a user portfolio document.
type ContentConfig struct {
	Path *string `toml:"path"`
}

// VisitsConfig controls the visit log.
type VisitsConfig struct {
	Record *bool `toml:"record"`
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
