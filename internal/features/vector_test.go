package features

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ayusman/signdata/internal/detector"
)

// flatten lists a hand's coordinates in landmark order.
func flatten(h detector.HandLandmarks) []float64 {
	out := make([]float64, 0, ValuesPerHand)
	for _, p := range h.Points {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

func zeros(n int) []float64 {
	return make([]float64, n)
}

func TestLen(t *testing.T) {
	if Len != 126 {
		t.Errorf("Len = %d, want 126", Len)
	}
	if ValuesPerHand != 63 {
		t.Errorf("ValuesPerHand = %d, want 63", ValuesPerHand)
	}
}

func TestBuild(t *testing.T) {
	fist := detector.FistLandmarks()
	flat := detector.FlatHandLandmarks()

	tests := []struct {
		name  string
		hands []detector.HandLandmarks
		want  []float64
	}{
		{
			name:  "nil detections",
			hands: nil,
			want:  zeros(Len),
		},
		{
			name:  "empty detections",
			hands: []detector.HandLandmarks{},
			want:  zeros(Len),
		},
		{
			name:  "one hand is padded",
			hands: []detector.HandLandmarks{fist},
			want:  append(flatten(fist), zeros(ValuesPerHand)...),
		},
		{
			name:  "two hands in reported order",
			hands: []detector.HandLandmarks{flat, fist},
			want:  append(flatten(flat), flatten(fist)...),
		},
		{
			name:  "third hand ignored",
			hands: []detector.HandLandmarks{fist, flat, fist},
			want:  append(flatten(fist), flatten(flat)...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.hands)

			if diff := cmp.Diff(tt.want, got[:]); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_LandmarkOrder(t *testing.T) {
	var hand detector.HandLandmarks
	for i := range hand.Points {
		hand.Points[i] = detector.Point3D{X: float64(i) + 0.5, Y: float64(i) + 0.25, Z: float64(i) + 0.125}
	}

	v := Build([]detector.HandLandmarks{hand})

	if v[0] != 0.5 || v[1] != 0.25 || v[2] != 0.125 {
		t.Errorf("wrist encoded as %v, want [0.5 0.25 0.125]", v[0:3])
	}
	tip := detector.PinkyTip * detector.CoordsPerLandmark
	if v[tip] != 20.5 || v[tip+2] != 20.125 {
		t.Errorf("pinky tip encoded as %v", v[tip:tip+3])
	}
}

func TestBuild_Pure(t *testing.T) {
	hands := []detector.HandLandmarks{detector.FistLandmarks(), detector.FlatHandLandmarks()}
	before := append([]detector.HandLandmarks(nil), hands...)

	first := Build(hands)
	for i := 0; i < 5; i++ {
		if again := Build(hands); again != first {
			t.Fatalf("call %d returned a different vector", i)
		}
	}

	if diff := cmp.Diff(before, hands); diff != "" {
		t.Errorf("Build mutated its input (-before +after):\n%s", diff)
	}
}

func TestVector_ZeroCountAndValidity(t *testing.T) {
	fist := detector.FistLandmarks()
	flat := detector.FlatHandLandmarks()

	nearlyEmpty := Build(nil)
	nearlyEmpty[5] = 0.4

	oneHandWithZero := fist
	oneHandWithZero.Points[detector.Wrist].Z = 0

	tests := []struct {
		name      string
		v         Vector
		zeros     int
		valid     bool
		empty     bool
		handFound bool
	}{
		{name: "no hands", v: Build(nil), zeros: 126, valid: false, empty: true, handFound: false},
		{name: "single coordinate", v: nearlyEmpty, zeros: 125, valid: false, empty: false, handFound: true},
		{name: "one hand", v: Build([]detector.HandLandmarks{fist}), zeros: 63, valid: false, handFound: true},
		{name: "one hand with zero wrist depth", v: Build([]detector.HandLandmarks{oneHandWithZero}), zeros: 64, valid: false, handFound: true},
		{name: "two hands", v: Build([]detector.HandLandmarks{fist, flat}), zeros: 0, valid: true, handFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.ZeroCount(); got != tt.zeros {
				t.Errorf("ZeroCount() = %d, want %d", got, tt.zeros)
			}
			if got := tt.v.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.v.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, want %v", got, tt.empty)
			}
			if got := ZeroCount.Accept(&tt.v); got != tt.valid {
				t.Errorf("ZeroCount.Accept() = %v, want %v", got, tt.valid)
			}
			if got := HandPresent.Accept(&tt.v); got != tt.handFound {
				t.Errorf("HandPresent.Accept() = %v, want %v", got, tt.handFound)
			}
		})
	}
}

func TestVector_Hand(t *testing.T) {
	fist := detector.FistLandmarks()
	flat := detector.FlatHandLandmarks()
	v := Build([]detector.HandLandmarks{fist, flat})

	if diff := cmp.Diff(flatten(fist), v.Hand(0)); diff != "" {
		t.Errorf("Hand(0) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(flatten(flat), v.Hand(1)); diff != "" {
		t.Errorf("Hand(1) mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name    string
		want    Policy
		wantErr bool
	}{
		{name: "zero-count", want: ZeroCount},
		{name: "hand-present", want: HandPresent},
		{name: "strict", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePolicy(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePolicy(%q) = %v, want %v", tt.name, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}
}
