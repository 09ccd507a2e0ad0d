// Package feedback renders per-frame capture status for the operator.
// Sinks are write-only: nothing they do is read back by the capture loop.
package feedback

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/ayusman/signdata/internal/detector"
)

// Overlay is what the capture loop wants shown for one frame. Countdown is the
// whole seconds left before the next capture may happen; zero or less means
// the gate is open.
type Overlay struct {
	Label     string                   `json:"label"`
	Captured  int                      `json:"captured"`
	Target    int                      `json:"target"`
	Countdown int                      `json:"countdown"`
	NoHand    bool                     `json:"no_hand"`
	Hands     []detector.HandLandmarks `json:"hands,omitempty"`
}

// Sink accepts overlays. frame may be nil for sinks that do not draw.
type Sink interface {
	Render(frame *gocv.Mat, o Overlay) error
}

// Kind classifies a line of overlay text so each sink can style it.
type Kind int

const (
	KindLabel Kind = iota
	KindCounter
	KindCountdown
	KindCapturing
	KindWarning
)

// Line is one piece of overlay text.
type Line struct {
	Kind Kind
	Text string
}

// Lines returns the overlay text in display order.
func Lines(o Overlay) []Line {
	lines := []Line{
		{Kind: KindLabel, Text: fmt.Sprintf("Letter: %s", o.Label)},
		{Kind: KindCounter, Text: fmt.Sprintf("Captured: %d/%d", o.Captured, o.Target)},
	}
	if o.Countdown > 0 {
		lines = append(lines, Line{Kind: KindCountdown, Text: fmt.Sprintf("Next in: %d", o.Countdown)})
	} else {
		lines = append(lines, Line{Kind: KindCapturing, Text: "Capturing..."})
	}
	if o.NoHand {
		lines = append(lines, Line{Kind: KindWarning, Text: "No hand detected!"})
	}
	return lines
}

// Nop discards every overlay.
type Nop struct{}

// Render does nothing.
func (Nop) Render(*gocv.Mat, Overlay) error { return nil }

// Multi fans an overlay out to several sinks. Every sink is rendered even if
// an earlier one fails; the failures are joined.
type Multi []Sink

// Render renders o on every sink.
func (m Multi) Render(frame *gocv.Mat, o Overlay) error {
	var errs []error
	for _, s := range m {
		if err := s.Render(frame, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
