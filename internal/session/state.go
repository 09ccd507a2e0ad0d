package session

// State is a capture session's position in its lifecycle.
type State int

const (
	// Cooling means the interval since the last capture has not elapsed yet.
	Cooling State = iota
	// AwaitingFrame means the loop is blocked on the frame source.
	AwaitingFrame
	// ReadyToCapture means the interval has elapsed and the next valid frame is kept.
	ReadyToCapture
	// Complete means the target sample count was reached.
	Complete
	// Aborted means the source ended or the operator cancelled first.
	Aborted
)

var stateNames = map[State]string{
	Cooling:        "cooling",
	AwaitingFrame:  "awaiting_frame",
	ReadyToCapture: "ready_to_capture",
	Complete:       "complete",
	Aborted:        "aborted",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == Complete || s == Aborted
}
