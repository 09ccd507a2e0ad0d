package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/signdata/internal/features"
)

var (
	// ErrSourceExhausted is recorded when the frame source ends before the target.
	ErrSourceExhausted = errors.New("frame source exhausted")
	// ErrCancelled is recorded when the operator stops the session.
	// It matches ErrSourceExhausted under errors.Is.
	ErrCancelled = &cancelledError{}
)

type cancelledError struct{}

func (*cancelledError) Error() string        { return "capture cancelled by operator" }
func (*cancelledError) Is(target error) bool { return target == ErrSourceExhausted }

// Sample is one committed feature vector.
type Sample struct {
	Label      string
	Vector     features.Vector
	CapturedAt time.Time
}

// Session is the state of one capture run. It is owned by the Controller that
// created it and must not be read while Run is in progress.
type Session struct {
	ID          string
	Label       string
	Target      int
	State       State
	Samples     []Sample
	StartedAt   time.Time
	LastCapture time.Time
	EndedAt     time.Time
	// Frames counts frames pulled from the source.
	Frames int
	// Err is why an Aborted session stopped; nil otherwise.
	Err error
}

func newSession(label string, target int, now time.Time) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Label:       label,
		Target:      target,
		State:       Cooling,
		Samples:     make([]Sample, 0, target),
		StartedAt:   now,
		LastCapture: now,
	}
}

// Captured returns the number of committed samples.
func (s *Session) Captured() int {
	return len(s.Samples)
}

func (s *Session) commit(v features.Vector, now time.Time) {
	s.Samples = append(s.Samples, Sample{Label: s.Label, Vector: v, CapturedAt: now})
	s.LastCapture = now
}

func (s *Session) finish(state State, err error, now time.Time) {
	s.State = state
	s.Err = err
	s.EndedAt = now
}
