// Package app wires one dataset capture run: camera, hand detector, feedback
// sinks, the session controller, and persistence of the result.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/ayusman/signdata/internal/capture"
	"github.com/ayusman/signdata/internal/dataset"
	"github.com/ayusman/signdata/internal/detector"
	"github.com/ayusman/signdata/internal/feedback"
	"github.com/ayusman/signdata/internal/features"
	"github.com/ayusman/signdata/internal/session"
	"github.com/ayusman/signdata/internal/store"
	"github.com/ayusman/signdata/internal/timeutil"
)

// Config holds configuration options for a capture run.
type Config struct {
	Session  session.Config
	Detector detector.Config

	// Device is a camera index or a video file path.
	Device string
	Mirror bool

	// FPS is requested from the camera when positive.
	FPS int

	// DataDir receives the per-label CSV file.
	DataDir string

	// Store records the session ledger when set.
	Store *store.Store

	// Window shows the annotated preview in a HighGUI window.
	Window bool

	// Sinks receive feedback in addition to the window.
	Sinks []feedback.Sink
}

// Result describes a finished capture run.
type Result struct {
	Session *session.Session
	// DataFile is empty when no samples were captured.
	DataFile string
}

// App owns the resources of a capture run.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	clock    timeutil.Clock
	stream   *capture.Stream
	// cancelled records a Cancel that arrived before Run built the stream.
	cancelled bool
	mu        sync.Mutex
}

// New validates the configuration and prepares the camera and detector.
// Nothing is opened until Run.
func New(config Config) (*App, error) {
	if err := config.Session.Validate(); err != nil {
		return nil, err
	}
	if config.DataDir == "" {
		return nil, fmt.Errorf("%w: data dir is required", session.ErrInvalidConfig)
	}

	a := &App{
		config: config,
		camera: capture.NewCamera(config.Device),
		clock:  timeutil.RealClock{},
	}

	mp, err := detector.NewMediaPipeDetector(config.Detector)
	if err != nil {
		log.Printf("MediaPipe not available: %v", err)
		return nil, fmt.Errorf("hand detector: %w", err)
	}
	a.detector = mp
	log.Println("Using MediaPipe hand detection")

	return a, nil
}

// NewWithDevices creates an App over an existing camera and detector.
func NewWithDevices(config Config, camera capture.Camera, det detector.Detector) (*App, error) {
	if err := config.Session.Validate(); err != nil {
		return nil, err
	}
	if config.DataDir == "" {
		return nil, fmt.Errorf("%w: data dir is required", session.ErrInvalidConfig)
	}
	if camera == nil || det == nil {
		return nil, errors.New("camera and detector are required")
	}

	return &App{
		config:   config,
		camera:   camera,
		detector: det,
		clock:    timeutil.RealClock{},
	}, nil
}

// SetClock replaces the clock handed to the session controller.
func (a *App) SetClock(c timeutil.Clock) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clock = c
}

// Cancel stops a running capture at its next frame. A Cancel before Run makes
// Run abort on its first frame.
func (a *App) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelled = true
	if a.stream != nil {
		a.stream.Cancel()
	}
}

// Run opens the camera, drives one capture session to a terminal state, and
// persists whatever was captured. An aborted session is not an error: its
// partial samples are written and Result.Session.Err says why it stopped.
func (a *App) Run(ctx context.Context) (*Result, error) {
	a.mu.Lock()
	det := a.detector
	clock := a.clock
	a.mu.Unlock()
	defer det.Close()

	if a.config.FPS > 0 {
		a.camera.SetFPS(a.config.FPS)
	}
	if err := a.camera.Open(); err != nil {
		return nil, fmt.Errorf("open camera: %w", err)
	}
	defer a.camera.Close()

	stream := capture.NewStream(a.camera, a.config.Mirror)
	a.mu.Lock()
	a.stream = stream
	if a.cancelled {
		stream.Cancel()
	}
	a.mu.Unlock()

	sinks := feedback.Multi{}
	if a.config.Window {
		window := feedback.NewWindow(stream.Cancel)
		defer window.Close()
		sinks = append(sinks, window)
	}
	sinks = append(sinks, a.config.Sinks...)

	controller, err := session.NewController(a.config.Session, stream, det,
		session.WithClock(clock),
		session.WithSink(sinks),
	)
	if err != nil {
		return nil, err
	}

	log.Printf("Capturing %d samples for letter '%s'", a.config.Session.Target, a.config.Session.Label)
	sess := controller.Run(ctx)
	if sess.Err != nil {
		log.Printf("Session %s stopped: %v", sess.ID, sess.Err)
	}

	result := &Result{Session: sess}
	if sess.Captured() > 0 {
		vectors := make([]features.Vector, len(sess.Samples))
		for i, sample := range sess.Samples {
			vectors[i] = sample.Vector
		}
		path, err := dataset.WriteLabelFile(a.config.DataDir, sess.Label, vectors)
		if err != nil {
			return result, fmt.Errorf("write samples: %w", err)
		}
		result.DataFile = path
		log.Printf("Wrote %d rows to %s", sess.Captured(), path)
	} else {
		log.Printf("No samples captured for letter '%s'; nothing written", sess.Label)
	}

	if a.config.Store != nil {
		if err := record(a.config.Store, result); err != nil {
			return result, fmt.Errorf("record session: %w", err)
		}
	}

	return result, nil
}

// record writes the session and its samples to the ledger.
func record(s *store.Store, result *Result) error {
	sess := result.Session

	row := &store.Session{
		ID:        sess.ID,
		Label:     sess.Label,
		State:     store.SessionAborted,
		Target:    sess.Target,
		Frames:    sess.Frames,
		StartedAt: sess.StartedAt,
		EndedAt:   sess.EndedAt,
	}
	if sess.State == session.Complete {
		row.State = store.SessionComplete
	}
	if sess.Err != nil {
		row.Error = sess.Err.Error()
	}
	if err := s.Sessions().Create(row); err != nil {
		return err
	}
	if result.DataFile != "" {
		if err := s.Sessions().SetDataFile(sess.ID, result.DataFile); err != nil {
			return err
		}
	}

	if sess.Captured() == 0 {
		return nil
	}

	samples := make([]store.Sample, len(sess.Samples))
	for i, sample := range sess.Samples {
		samples[i] = store.Sample{
			Label:      sample.Label,
			Values:     append([]float64(nil), sample.Vector[:]...),
			CapturedAt: sample.CapturedAt,
		}
	}
	return s.Samples().Create(sess.ID, samples)
}
