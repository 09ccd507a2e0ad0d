package features

import "fmt"

// Policy decides whether a vector may be committed as a sample.
type Policy int

const (
	// ZeroCount accepts vectors with fewer than ValuesPerHand zero entries.
	ZeroCount Policy = iota
	// HandPresent accepts vectors where at least one hand block is not all zero.
	HandPresent
)

var policyNames = map[Policy]string{
	ZeroCount:   "zero-count",
	HandPresent: "hand-present",
}

func (p Policy) String() string {
	if n, ok := policyNames[p]; ok {
		return n
	}
	return "unknown"
}

// ParsePolicy maps a policy name back to its value.
func ParsePolicy(name string) (Policy, error) {
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return ZeroCount, fmt.Errorf("unknown validity policy %q (want zero-count or hand-present)", name)
}

// Accept applies the policy to v.
func (p Policy) Accept(v *Vector) bool {
	switch p {
	case HandPresent:
		for i := 0; i < HandsPerVector; i++ {
			for _, x := range v.Hand(i) {
				if x != 0 {
					return true
				}
			}
		}
		return false
	default:
		return v.Valid()
	}
}
