// Package features encodes per-frame hand detections as fixed-length feature vectors.
package features

import "github.com/ayusman/signdata/internal/detector"

// Vector layout constants.
const (
	// HandsPerVector is the number of hands a vector has room for.
	HandsPerVector = 2
	// ValuesPerHand is 21 landmarks times (x, y, z).
	ValuesPerHand = detector.NumLandmarks * detector.CoordsPerLandmark
	// Len is the total vector length.
	Len = HandsPerVector * ValuesPerHand
)

// Vector is one sample's feature encoding: the first hand's 63 values followed
// by the second hand's 63 values, zero-filled where a hand is absent.
type Vector [Len]float64

// Build encodes the detections of a single frame. Hands are taken in the order
// the estimator reported them; anything past the second hand is ignored.
func Build(hands []detector.HandLandmarks) Vector {
	var v Vector
	for h := 0; h < len(hands) && h < HandsPerVector; h++ {
		base := h * ValuesPerHand
		for i, p := range hands[h].Points {
			off := base + i*detector.CoordsPerLandmark
			v[off] = p.X
			v[off+1] = p.Y
			v[off+2] = p.Z
		}
	}
	return v
}

// ZeroCount returns how many entries are exactly zero.
func (v *Vector) ZeroCount() int {
	n := 0
	for _, x := range v {
		if x == 0 {
			n++
		}
	}
	return n
}

// Valid reports whether the vector holds fewer zero entries than one hand block.
// A single detected hand leaves exactly ValuesPerHand padding zeros and so does
// not pass on its own; see HandPresent for the per-block alternative.
func (v *Vector) Valid() bool {
	return v.ZeroCount() < ValuesPerHand
}

// Empty reports whether every entry is zero, i.e. no hand was detected.
func (v *Vector) Empty() bool {
	return v.ZeroCount() == Len
}

// Hand returns the 63-value block of hand slot i (0 or 1).
func (v *Vector) Hand(i int) []float64 {
	return v[i*ValuesPerHand : (i+1)*ValuesPerHand]
}
