package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, FileConfig{}, cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_Full(t *testing.T) {
	path := writeConfig(t, `
[capture]
device = "1"
fps = 30
target = 20
interval = "1500ms"
max-hands = 1
min-confidence = 0.6
mirror = false
policy = "hand-present"
data-dir = "/data/signs"
window = false
serve = ":8080"

[merge]
input = "/data/signs"
output = "/data/all.csv"
sort-by-label = true

[server]
addr = "127.0.0.1:9000"
static-dir = "web"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	c := cfg.Capture
	require.Equal(t, "1", *c.Device)
	require.Equal(t, 30, *c.FPS)
	require.Equal(t, 20, *c.Target)
	require.Equal(t, 1500*time.Millisecond, c.Interval.Duration)
	require.Equal(t, 1, *c.MaxHands)
	require.Equal(t, 0.6, *c.MinConfidence)
	require.False(t, *c.Mirror)
	require.Equal(t, "hand-present", *c.Policy)
	require.Equal(t, "/data/signs", *c.DataDir)
	require.False(t, *c.Window)
	require.Equal(t, ":8080", *c.Serve)

	require.Equal(t, "/data/all.csv", *cfg.Merge.Output)
	require.True(t, *cfg.Merge.SortByLabel)
	require.Equal(t, "127.0.0.1:9000", *cfg.Server.Addr)
	require.Equal(t, "web", *cfg.Server.StaticDir)
}

func TestLoadConfig_PartialLeavesNil(t *testing.T) {
	path := writeConfig(t, "[capture]\ntarget = 10\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 10, *cfg.Capture.Target)
	require.Nil(t, cfg.Capture.Interval)
	require.Nil(t, cfg.Capture.Mirror)
	require.Nil(t, cfg.Merge.Output)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad duration", content: "[capture]\ninterval = \"soon\"\n"},
		{name: "wrong type", content: "[capture]\ntarget = \"many\"\n"},
		{name: "unknown key", content: "[capture]\nexposure = 30\n"},
		{name: "not toml", content: "[capture\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestDefaultPaths_XDG(t *testing.T) {
	t.Setenv(HomeEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	require.Equal(t, filepath.Join("/xdg/config", "signdata", "config.toml"), DefaultConfigPath())
	require.Equal(t, filepath.Join("/xdg/data", "signdata", "sign_data"), DefaultDataDir())
	require.Equal(t, filepath.Join("/xdg/data", "signdata", "signdata.db"), DefaultDBPath())
}

func TestDefaultPaths_HomeOverride(t *testing.T) {
	t.Setenv(HomeEnv, "/srv/signdata")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	require.Equal(t, filepath.Join("/srv/signdata", "config.toml"), DefaultConfigPath())
	require.Equal(t, filepath.Join("/srv/signdata", "sign_data"), DefaultDataDir())
	require.Equal(t, filepath.Join("/srv/signdata", "signdata.db"), DefaultDBPath())
}

func TestXDGFallbacks(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/signer")

	require.Equal(t, filepath.Join("/home/signer", ".config"), XDGConfigHome())
	require.Equal(t, filepath.Join("/home/signer", ".local", "share"), XDGDataHome())
}
