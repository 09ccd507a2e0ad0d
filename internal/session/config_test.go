package session

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeLabel(t *testing.T) {
	tests := map[string]string{
		"a":    "A",
		" b\n": "B",
		"Z":    "Z",
		"ab":   "AB",
		"":     "",
	}
	for in, want := range tests {
		if got := NormalizeLabel(in); got != want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "one hand", mutate: func(c *Config) { c.MaxHands = 1 }},
		{name: "empty label", mutate: func(c *Config) { c.Label = "" }, wantErr: ErrInvalidLabel},
		{name: "two letters", mutate: func(c *Config) { c.Label = "AB" }, wantErr: ErrInvalidLabel},
		{name: "digit", mutate: func(c *Config) { c.Label = "7" }, wantErr: ErrInvalidLabel},
		{name: "lower case", mutate: func(c *Config) { c.Label = "a" }, wantErr: ErrInvalidLabel},
		{name: "non-ascii letter", mutate: func(c *Config) { c.Label = "Ä" }, wantErr: ErrInvalidLabel},
		{name: "zero target", mutate: func(c *Config) { c.Target = 0 }, wantErr: ErrInvalidConfig},
		{name: "zero interval", mutate: func(c *Config) { c.Interval = 0 }, wantErr: ErrInvalidConfig},
		{name: "negative interval", mutate: func(c *Config) { c.Interval = -time.Second }, wantErr: ErrInvalidConfig},
		{name: "three hands", mutate: func(c *Config) { c.MaxHands = 3 }, wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Label = "K"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Target != 50 {
		t.Errorf("Target = %d, want 50", cfg.Target)
	}
	if cfg.Interval != 3*time.Second {
		t.Errorf("Interval = %s, want 3s", cfg.Interval)
	}
	if cfg.MaxHands != 2 {
		t.Errorf("MaxHands = %d, want 2", cfg.MaxHands)
	}
}

func TestState(t *testing.T) {
	if Cooling != 0 {
		t.Error("a zero State must be Cooling")
	}
	for _, s := range []State{Cooling, AwaitingFrame, ReadyToCapture} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []State{Complete, Aborted} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	if got := AwaitingFrame.String(); got != "awaiting_frame" {
		t.Errorf("AwaitingFrame.String() = %q", got)
	}
	if got := State(42).String(); got != "unknown" {
		t.Errorf("State(42).String() = %q, want unknown", got)
	}
}
