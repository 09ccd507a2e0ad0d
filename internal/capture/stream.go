package capture

import (
	"errors"
	"fmt"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// ErrEndOfStream is returned by a FrameSource that has no more frames.
var ErrEndOfStream = errors.New("end of stream")

// FrameSource is the capture loop's view of the video input.
type FrameSource interface {
	// Next blocks for the next frame. The caller closes the returned Mat.
	// Any error ends the stream.
	Next() (*gocv.Mat, error)

	// Cancelled reports whether the operator asked to stop.
	Cancelled() bool
}

// Stream adapts a Camera into a FrameSource. Frames are mirrored horizontally
// when mirror is set so the preview behaves like a mirror for the signer.
type Stream struct {
	camera    Camera
	mirror    bool
	cancelled atomic.Bool
}

// NewStream creates a Stream over an opened camera.
func NewStream(camera Camera, mirror bool) *Stream {
	return &Stream{camera: camera, mirror: mirror}
}

// Next reads one frame from the camera.
func (s *Stream) Next() (*gocv.Mat, error) {
	frame, err := s.camera.ReadFrame()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEndOfStream, err)
	}

	if !s.mirror {
		return frame, nil
	}

	mirrored := gocv.NewMat()
	gocv.Flip(*frame, &mirrored, 1)
	frame.Close()
	return &mirrored, nil
}

// Cancel asks the capture loop to stop at its next iteration. Safe to call
// from any goroutine, any number of times.
func (s *Stream) Cancel() {
	s.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (s *Stream) Cancelled() bool {
	return s.cancelled.Load()
}
