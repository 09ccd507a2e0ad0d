package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ayusman/signdata/internal/capture"
	"github.com/ayusman/signdata/internal/dataset"
	"github.com/ayusman/signdata/internal/detector"
	"github.com/ayusman/signdata/internal/feedback"
	"github.com/ayusman/signdata/internal/session"
	"github.com/ayusman/signdata/internal/store"
	"github.com/ayusman/signdata/internal/timeutil"
	"gocv.io/x/gocv"
)

var runStart = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// scenario is the frame schedule of the two-capture walkthrough.
var scenario = []time.Duration{
	0,
	time.Second,
	2 * time.Second,
	3500 * time.Millisecond,
	4 * time.Second,
	7 * time.Second,
}

type harness struct {
	app      *App
	camera   *capture.MockCamera
	detector *detector.MockDetector
	store    *store.Store
	dataDir  string
}

func newHarness(t *testing.T, target int, offsets []time.Duration, sinks ...feedback.Sink) *harness {
	t.Helper()

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	frames := make([]*gocv.Mat, len(offsets))
	for i := range frames {
		m := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		frames[i] = &m
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})

	clock := timeutil.NewMockClock(runStart)
	camera := capture.NewMockCamera(frames, false)
	camera.OnRead(func(index int) {
		clock.Set(runStart.Add(offsets[index]))
	})

	det := detector.NewMockDetector()
	det.SetHands([]detector.HandLandmarks{detector.FistLandmarks(), detector.FlatHandLandmarks()})

	cfg := session.DefaultConfig()
	cfg.Label = "A"
	cfg.Target = target

	dataDir := filepath.Join(tmpDir, "sign_data")
	app, err := NewWithDevices(Config{
		Session: cfg,
		Mirror:  true,
		DataDir: dataDir,
		Store:   s,
		Sinks:   sinks,
	}, camera, det)
	if err != nil {
		t.Fatalf("NewWithDevices() error = %v", err)
	}
	app.SetClock(clock)

	return &harness{app: app, camera: camera, detector: det, store: s, dataDir: dataDir}
}

type countingSink struct {
	mu       sync.Mutex
	overlays []feedback.Overlay
}

func (c *countingSink) Render(_ *gocv.Mat, o feedback.Overlay) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overlays = append(c.overlays, o)
	return nil
}

func TestApp_Run_CompleteSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	sink := &countingSink{}
	h := newHarness(t, 2, scenario, sink)

	result, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	sess := result.Session
	if sess.State != session.Complete || sess.Captured() != 2 {
		t.Fatalf("session = %s with %d samples, want complete with 2", sess.State, sess.Captured())
	}
	if len(sink.overlays) != len(scenario) {
		t.Errorf("sink saw %d overlays, want %d", len(sink.overlays), len(scenario))
	}
	if !h.detector.Closed() {
		t.Error("detector should be closed after Run")
	}
	if h.camera.IsOpen() {
		t.Error("camera should be closed after Run")
	}

	if want := dataset.PathFor(h.dataDir, "A"); result.DataFile != want {
		t.Errorf("DataFile = %q, want %q", result.DataFile, want)
	}
	rows, err := dataset.ReadRows(result.DataFile)
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "A" || len(rows[0]) != dataset.Columns {
		t.Errorf("unexpected rows: %d rows, first has %d cells", len(rows), len(rows[0]))
	}

	recorded, err := h.store.Sessions().GetByID(sess.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if recorded.State != store.SessionComplete || recorded.Captured != 2 || recorded.Frames != len(scenario) {
		t.Errorf("unexpected ledger row: %+v", recorded)
	}
	if recorded.DataFile != result.DataFile || recorded.Error != "" {
		t.Errorf("unexpected ledger row: %+v", recorded)
	}

	samples, err := h.store.Samples().GetBySessionID(sess.ID)
	if err != nil {
		t.Fatalf("GetBySessionID() error = %v", err)
	}
	if len(samples) != 2 || !samples[1].CapturedAt.Equal(runStart.Add(7*time.Second)) {
		t.Errorf("unexpected samples: %+v", samples)
	}
}

func TestApp_Run_PartialSessionIsPersisted(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	h := newHarness(t, 5, scenario)

	result, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	sess := result.Session
	if sess.State != session.Aborted || !errors.Is(sess.Err, session.ErrSourceExhausted) {
		t.Fatalf("session = %s (%v), want aborted with source exhausted", sess.State, sess.Err)
	}
	if sess.Captured() != 2 {
		t.Errorf("captured = %d, want 2", sess.Captured())
	}

	rows, err := dataset.ReadRows(result.DataFile)
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 partial rows, got %d", len(rows))
	}

	recorded, err := h.store.Sessions().GetByID(sess.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if recorded.State != store.SessionAborted || recorded.Error == "" || recorded.Captured != 2 {
		t.Errorf("unexpected ledger row: %+v", recorded)
	}
}

func TestApp_Run_NoSamplesWritesNoFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	h := newHarness(t, 2, scenario)
	h.detector.SetHands(nil)

	result, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.DataFile != "" {
		t.Errorf("DataFile = %q, want empty", result.DataFile)
	}
	if _, err := os.Stat(dataset.PathFor(h.dataDir, "A")); !os.IsNotExist(err) {
		t.Errorf("expected no data file, stat error = %v", err)
	}

	recorded, err := h.store.Sessions().GetByID(result.Session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if recorded.Captured != 0 || recorded.DataFile != "" {
		t.Errorf("unexpected ledger row: %+v", recorded)
	}
}

func TestApp_Cancel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	h := newHarness(t, 2, scenario)
	h.camera.OnRead(func(index int) {
		if index == 3 {
			h.app.Cancel()
		}
	})

	result, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	sess := result.Session
	if !errors.Is(sess.Err, session.ErrCancelled) {
		t.Fatalf("Err = %v, want ErrCancelled", sess.Err)
	}
	if h.camera.Reads() != 4 {
		t.Errorf("camera reads = %d, want 4", h.camera.Reads())
	}
}

func TestApp_CancelBeforeRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	h := newHarness(t, 2, scenario)
	h.app.Cancel()

	result, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	sess := result.Session
	if sess.State != session.Aborted || !errors.Is(sess.Err, session.ErrCancelled) {
		t.Fatalf("session = %s (%v), want aborted with ErrCancelled", sess.State, sess.Err)
	}
	if h.camera.Reads() != 0 {
		t.Errorf("camera reads = %d, want 0", h.camera.Reads())
	}
	if result.DataFile != "" {
		t.Errorf("DataFile = %q, want empty", result.DataFile)
	}

	recorded, err := h.store.Sessions().GetByID(sess.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if recorded.State != store.SessionAborted || recorded.Captured != 0 {
		t.Errorf("unexpected ledger row: %+v", recorded)
	}
}

func TestApp_Run_RequestsFPS(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tests := []struct {
		name string
		fps  int
		want int
	}{
		{name: "configured", fps: 30, want: 30},
		{name: "unset keeps camera default", fps: 0, want: capture.DefaultFPS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 2, scenario)
			h.app.config.FPS = tt.fps

			if _, err := h.app.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got := h.camera.FPS(); got != tt.want {
				t.Errorf("camera FPS = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewWithDevices_Validation(t *testing.T) {
	det := detector.NewMockDetector()
	camera := capture.NewMockCamera(nil, false)

	cfg := session.DefaultConfig()
	cfg.Label = "7"
	_, err := NewWithDevices(Config{Session: cfg, DataDir: t.TempDir()}, camera, det)
	if !errors.Is(err, session.ErrInvalidLabel) {
		t.Errorf("expected ErrInvalidLabel, got %v", err)
	}

	cfg.Label = "B"
	_, err = NewWithDevices(Config{Session: cfg}, camera, det)
	if !errors.Is(err, session.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for missing data dir, got %v", err)
	}

	_, err = NewWithDevices(Config{Session: cfg, DataDir: t.TempDir()}, nil, det)
	if err == nil {
		t.Error("expected error for nil camera")
	}
	if camera.IsOpen() {
		t.Error("validation must not open the camera")
	}
}
