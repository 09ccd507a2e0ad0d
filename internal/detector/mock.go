package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// Results queued with Enqueue are returned one per Detect call; once the
// queue is drained the hands (or error) set with SetHands/SetError are used.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	err    error
	queue  []mockResult
	calls  int
	closed bool
}

type mockResult struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands returned once the queue is empty.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error returned once the queue is empty.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Enqueue appends a single Detect result to the queue.
func (m *MockDetector) Enqueue(hands []HandLandmarks, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockResult{hands: hands, err: err})
}

// Detect returns the next queued result or the configured hands/error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		if next.err != nil {
			return nil, next.err
		}
		return next.hands, nil
	}

	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close marks the detector closed.
func (m *MockDetector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Preset poses keep every coordinate non-zero so a single hand passes the
// zero-count validity check on its own.

// FistLandmarks returns a right hand closed into a fist with the thumb resting
// against the side of the index finger, the handshape of the letter A.
func FistLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.97,
	}

	lm.Points[Wrist] = Point3D{X: 0.48, Y: 0.82, Z: 0.01}

	// Thumb pressed along the index side, tip level with the index knuckle
	lm.Points[ThumbCMC] = Point3D{X: 0.54, Y: 0.77, Z: -0.01}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.70, Z: -0.02}
	lm.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.64, Z: -0.03}
	lm.Points[ThumbTip] = Point3D{X: 0.60, Y: 0.59, Z: -0.03}

	// Fingers folded into the palm
	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.62, Z: -0.01}
	lm.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.57, Z: -0.06}
	lm.Points[IndexDIP] = Point3D{X: 0.54, Y: 0.63, Z: -0.07}
	lm.Points[IndexTip] = Point3D{X: 0.53, Y: 0.67, Z: -0.05}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.61, Z: -0.01}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.56, Z: -0.06}
	lm.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.62, Z: -0.07}
	lm.Points[MiddleTip] = Point3D{X: 0.48, Y: 0.66, Z: -0.05}

	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.63, Z: -0.01}
	lm.Points[RingPIP] = Point3D{X: 0.45, Y: 0.58, Z: -0.05}
	lm.Points[RingDIP] = Point3D{X: 0.44, Y: 0.64, Z: -0.06}
	lm.Points[RingTip] = Point3D{X: 0.44, Y: 0.68, Z: -0.04}

	lm.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.66, Z: -0.01}
	lm.Points[PinkyPIP] = Point3D{X: 0.41, Y: 0.62, Z: -0.04}
	lm.Points[PinkyDIP] = Point3D{X: 0.40, Y: 0.66, Z: -0.05}
	lm.Points[PinkyTip] = Point3D{X: 0.40, Y: 0.69, Z: -0.04}

	return lm
}

// FlatHandLandmarks returns a left hand held upright with the fingers together
// and the thumb folded across the palm, the handshape of the letter B.
func FlatHandLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Left",
		Score:      0.94,
	}

	lm.Points[Wrist] = Point3D{X: 0.30, Y: 0.85, Z: 0.01}

	lm.Points[ThumbCMC] = Point3D{X: 0.26, Y: 0.80, Z: -0.02}
	lm.Points[ThumbMCP] = Point3D{X: 0.25, Y: 0.74, Z: -0.04}
	lm.Points[ThumbIP] = Point3D{X: 0.28, Y: 0.70, Z: -0.05}
	lm.Points[ThumbTip] = Point3D{X: 0.31, Y: 0.69, Z: -0.05}

	lm.Points[IndexMCP] = Point3D{X: 0.26, Y: 0.66, Z: 0.01}
	lm.Points[IndexPIP] = Point3D{X: 0.26, Y: 0.55, Z: 0.01}
	lm.Points[IndexDIP] = Point3D{X: 0.26, Y: 0.48, Z: 0.01}
	lm.Points[IndexTip] = Point3D{X: 0.26, Y: 0.42, Z: 0.01}

	lm.Points[MiddleMCP] = Point3D{X: 0.30, Y: 0.65, Z: 0.01}
	lm.Points[MiddlePIP] = Point3D{X: 0.30, Y: 0.53, Z: 0.01}
	lm.Points[MiddleDIP] = Point3D{X: 0.30, Y: 0.45, Z: 0.01}
	lm.Points[MiddleTip] = Point3D{X: 0.30, Y: 0.39, Z: 0.01}

	lm.Points[RingMCP] = Point3D{X: 0.34, Y: 0.66, Z: 0.01}
	lm.Points[RingPIP] = Point3D{X: 0.34, Y: 0.55, Z: 0.01}
	lm.Points[RingDIP] = Point3D{X: 0.34, Y: 0.48, Z: 0.01}
	lm.Points[RingTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.01}

	lm.Points[PinkyMCP] = Point3D{X: 0.37, Y: 0.68, Z: 0.01}
	lm.Points[PinkyPIP] = Point3D{X: 0.38, Y: 0.59, Z: 0.01}
	lm.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.53, Z: 0.01}
	lm.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.48, Z: 0.01}

	return lm
}
