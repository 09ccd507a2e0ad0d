package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/signdata/internal/capture"
	"github.com/ayusman/signdata/internal/detector"
	"github.com/ayusman/signdata/internal/feedback"
	"github.com/ayusman/signdata/internal/features"
	"github.com/ayusman/signdata/internal/timeutil"
)

// Controller drives one capture session over a frame source.
//
// Per frame:
// 1. Stop if the context is done or the source reports cancellation
// 2. Pull a frame; a read failure aborts the session
// 3. Estimate hand poses; per-frame failures count as no hands, ErrFatal aborts
// 4. Build the feature vector
// 5. Commit a sample if the interval has elapsed since the last capture and
//    the vector passes the validity policy
// 6. Render feedback
// 7. Complete once the target is reached
type Controller struct {
	cfg      Config
	source   capture.FrameSource
	detector detector.Detector
	sink     feedback.Sink
	clock    timeutil.Clock

	sinkFailed bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(clock timeutil.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithSink sets where per-frame feedback goes. The default discards it.
func WithSink(sink feedback.Sink) Option {
	return func(c *Controller) {
		c.sink = sink
	}
}

// NewController validates cfg and returns a Controller ready to Run.
func NewController(cfg Config, source capture.FrameSource, det detector.Detector, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.New("frame source is required")
	}
	if det == nil {
		return nil, errors.New("detector is required")
	}

	c := &Controller{
		cfg:      cfg,
		source:   source,
		detector: det,
		sink:     feedback.Nop{},
		clock:    timeutil.RealClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run captures until the target is reached, the source ends, or the session
// is cancelled. It always returns the session, including any partial samples;
// why an aborted session stopped is in Session.Err.
func (c *Controller) Run(ctx context.Context) *Session {
	s := newSession(c.cfg.Label, c.cfg.Target, c.clock.Now())
	log.Printf("Session %s started: label %s, target %d, interval %s, policy %s",
		s.ID, s.Label, s.Target, c.cfg.Interval, c.cfg.Policy)

	for !s.State.Terminal() {
		c.step(ctx, s)
	}

	if s.State == Complete {
		log.Printf("Session %s complete: %d/%d samples from %d frames", s.ID, s.Captured(), s.Target, s.Frames)
	} else {
		log.Printf("Session %s aborted with %d/%d samples: %v", s.ID, s.Captured(), s.Target, s.Err)
	}
	return s
}

func (c *Controller) step(ctx context.Context, s *Session) {
	if ctx.Err() != nil || c.source.Cancelled() {
		s.finish(Aborted, ErrCancelled, c.clock.Now())
		return
	}

	s.State = AwaitingFrame
	frame, err := c.source.Next()
	if err != nil {
		s.finish(Aborted, fmt.Errorf("%w: %v", ErrSourceExhausted, err), c.clock.Now())
		return
	}
	defer frame.Close()
	s.Frames++

	hands, err := c.detector.Detect(frame)
	if err != nil {
		if errors.Is(err, detector.ErrFatal) {
			s.finish(Aborted, fmt.Errorf("estimator: %w", err), c.clock.Now())
			return
		}
		log.Printf("Detection failed on frame %d, treating as no hands: %v", s.Frames, err)
		hands = nil
	}
	if len(hands) > c.cfg.MaxHands {
		hands = hands[:c.cfg.MaxHands]
	}

	vector := features.Build(hands)

	now := c.clock.Now()
	elapsed := c.clock.Since(s.LastCapture)
	countdown := countdownSeconds(c.cfg.Interval, elapsed)

	s.State = Cooling
	if elapsed >= c.cfg.Interval {
		s.State = ReadyToCapture
		if c.cfg.Policy.Accept(&vector) {
			s.commit(vector, now)
			s.State = Cooling
		}
	}

	c.render(frame, feedback.Overlay{
		Label:     s.Label,
		Captured:  s.Captured(),
		Target:    s.Target,
		Countdown: countdown,
		NoHand:    vector.Empty(),
		Hands:     hands,
	})

	if s.Captured() >= s.Target {
		s.finish(Complete, nil, now)
	}
}

// render hands the overlay to the sink. Sink failures are cosmetic and are
// logged once per session.
func (c *Controller) render(frame *gocv.Mat, o feedback.Overlay) {
	if err := c.sink.Render(frame, o); err != nil && !c.sinkFailed {
		c.sinkFailed = true
		log.Printf("Feedback rendering failed, continuing without it: %v", err)
	}
}

// countdownSeconds is the display-only countdown: interval minus elapsed,
// floored to whole seconds.
func countdownSeconds(interval, elapsed time.Duration) int {
	return int(math.Floor((interval - elapsed).Seconds()))
}
