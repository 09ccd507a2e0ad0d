package detector

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// MaxSupportedHands is the largest MaxHands value a Config may request.
// The feature vector encodes at most two hands, so tracking more buys nothing.
const MaxSupportedHands = 2

// ErrFatal marks an estimator failure that cannot be recovered within a session,
// such as the estimator process exiting. Other Detect errors are per-frame.
var ErrFatal = errors.New("estimator failed")

// Detector defines the interface for hand pose estimators.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks in
	// estimator order. Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with the values used for dataset capture.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
	}
}

// Validate checks that the configuration can be handed to an estimator.
func (c Config) Validate() error {
	if c.MaxHands < 1 || c.MaxHands > MaxSupportedHands {
		return fmt.Errorf("max hands must be between 1 and %d, got %d", MaxSupportedHands, c.MaxHands)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be between 0 and 1, got %f", c.MinConfidence)
	}
	if c.MinTrackingConf < 0 || c.MinTrackingConf > 1 {
		return fmt.Errorf("min tracking confidence must be between 0 and 1, got %f", c.MinTrackingConf)
	}
	return nil
}
