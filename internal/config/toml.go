// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Capture CaptureConfig `toml:"capture"`
	Merge   MergeConfig   `toml:"merge"`
	Server  ServerConfig  `toml:"server"`
}

// CaptureConfig maps capture-related settings. Unset keys stay nil so CLI
// defaults apply.
type CaptureConfig struct {
	Device        *string   `toml:"device"`
	FPS           *int      `toml:"fps"`
	Target        *int      `toml:"target"`
	Interval      *Duration `toml:"interval"`
	MaxHands      *int      `toml:"max-hands"`
	MinConfidence *float64  `toml:"min-confidence"`
	Mirror        *bool     `toml:"mirror"`
	Policy        *string   `toml:"policy"`
	DataDir       *string   `toml:"data-dir"`
	Window        *bool     `toml:"window"`
	Serve         *string   `toml:"serve"`
}

// MergeConfig maps merge-related settings.
type MergeConfig struct {
	Input       *string `toml:"input"`
	Output      *string `toml:"output"`
	SortByLabel *bool   `toml:"sort-by-label"`
}

// ServerConfig maps settings of the ledger server.
type ServerConfig struct {
	Addr      *string `toml:"addr"`
	StaticDir *string `toml:"static-dir"`
}

// Duration is a time.Duration written as a string ("3s", "1500ms").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
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
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
