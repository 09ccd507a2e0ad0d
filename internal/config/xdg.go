package config

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides every default location when set.
const HomeEnv = "SIGNDATA_HOME"

const appName = "signdata"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func configDir() string {
	if v := os.Getenv(HomeEnv); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), appName)
}

func dataDir() string {
	if v := os.Getenv(HomeEnv); v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), appName)
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// DefaultDataDir returns where per-label csv files are written.
func DefaultDataDir() string {
	return filepath.Join(dataDir(), "sign_data")
}

// DefaultDBPath returns the default path for the SQLite session ledger.
func DefaultDBPath() string {
	return filepath.Join(dataDir(), "signdata.db")
}
