package hand

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// FingerState holds the extended/folded state of the four non-thumb fingers,
// ordered index, middle, ring, pinky.
type FingerState [4]bool

// Finger state patterns recognized by the classifiers.
var (
	OpenPalm  = FingerState{true, true, true, true}
	IndexOnly = FingerState{true, false, false, false}
	TwoFinger = FingerState{true, true, false, false}
	Fist      = FingerState{false, false, false, false}
)

// fingerJoints lists MCP, PIP and TIP indices for index, middle, ring and pinky.
var fingerJoints = [4][3]int{
	{IndexMCP, IndexPIP, IndexTip},
	{MiddleMCP, MiddlePIP, MiddleTip},
	{RingMCP, RingPIP, RingTip},
	{PinkyMCP, PinkyPIP, PinkyTip},
}

// String renders the state as four 0/1 digits, e.g. "1000".
func (f FingerState) String() string {
	b := make([]byte, len(f))
	for i, up := range f {
		if up {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// Closed reports whether every finger is folded.
func (f FingerState) Closed() bool {
	return f == Fist
}

// ExtractFingers computes which fingers are extended.
// A finger is extended when the cosine between MCP→PIP and PIP→TIP exceeds
// p.ExtensionThreshold. Depth is ignored.
func ExtractFingers(s *Snapshot, p Params) FingerState {
	var state FingerState
	for i, j := range fingerJoints {
		mcp, pip, tip := s[j[0]].Vec2(), s[j[1]].Vec2(), s[j[2]].Vec2()
		state[i] = fingerCosine(mcp, pip, tip, p.Epsilon) > p.ExtensionThreshold
	}
	return state
}

func fingerCosine(mcp, pip, tip r2.Vec, eps float64) float64 {
	v1 := r2.Sub(pip, mcp)
	v2 := r2.Sub(tip, pip)
	return r2.Dot(v1, v2) / (r2.Norm(v1)*r2.Norm(v2) + eps)
}
