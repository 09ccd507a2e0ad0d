// Package session runs a timed capture session that turns a live frame stream
// into labeled feature-vector samples.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/ayusman/signdata/internal/detector"
	"github.com/ayusman/signdata/internal/features"
)

// Session defaults.
const (
	DefaultTarget   = 50
	DefaultInterval = 3 * time.Second
	DefaultMaxHands = 2
)

var (
	// ErrInvalidLabel is returned when the label is not exactly one letter.
	ErrInvalidLabel = errors.New("label must be a single letter A-Z")
	// ErrInvalidConfig is returned for out-of-range numeric options.
	ErrInvalidConfig = errors.New("invalid session config")
)

// Config holds the options for one capture session.
type Config struct {
	Label    string
	Target   int
	Interval time.Duration
	MaxHands int
	Policy   features.Policy
}

// DefaultConfig returns a Config with every option but the label filled in.
func DefaultConfig() Config {
	return Config{
		Target:   DefaultTarget,
		Interval: DefaultInterval,
		MaxHands: DefaultMaxHands,
		Policy:   features.ZeroCount,
	}
}

// NormalizeLabel trims and upper-cases operator input.
func NormalizeLabel(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidateLabel checks that label is exactly one ASCII letter.
func ValidateLabel(label string) error {
	r := []rune(label)
	if len(r) != 1 || r[0] > unicode.MaxASCII || !unicode.IsLetter(r[0]) {
		return fmt.Errorf("%w: got %q", ErrInvalidLabel, label)
	}
	return nil
}

// Validate checks every option. The label must already be normalized.
func (c Config) Validate() error {
	if err := ValidateLabel(c.Label); err != nil {
		return err
	}
	if !unicode.IsUpper(rune(c.Label[0])) {
		return fmt.Errorf("%w: label %q is not upper case", ErrInvalidLabel, c.Label)
	}
	if c.Target <= 0 {
		return fmt.Errorf("%w: target must be positive, got %d", ErrInvalidConfig, c.Target)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidConfig, c.Interval)
	}
	if c.MaxHands < 1 || c.MaxHands > detector.MaxSupportedHands {
		return fmt.Errorf("%w: max hands must be between 1 and %d, got %d",
			ErrInvalidConfig, detector.MaxSupportedHands, c.MaxHands)
	}
	return nil
}
