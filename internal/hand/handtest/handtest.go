// Package handtest provides synthetic hand snapshots for tests.
//
// Poses are built upright: wrist at the bottom, fingers pointing up the image
// (decreasing Y). Extended fingers are perfectly straight; folded fingers
// double back on themselves so the MCP→PIP and PIP→TIP vectors are opposed.
package handtest

import "github.com/ayusman/mudra/internal/hand"

// DefaultWrist is the wrist position used by the preset poses.
var DefaultWrist = hand.Landmark{X: 0.5, Y: 0.8, Z: 0}

// mcpOffsets are the knuckle positions relative to the wrist for index,
// middle, ring and pinky.
var mcpOffsets = [4]hand.Landmark{
	{X: 0.05, Y: -0.15, Z: 0},
	{X: 0.00, Y: -0.17, Z: 0},
	{X: -0.05, Y: -0.15, Z: 0},
	{X: -0.10, Y: -0.12, Z: 0},
}

var fingerIndices = [4][4]int{
	{hand.IndexMCP, hand.IndexPIP, hand.IndexDIP, hand.IndexTip},
	{hand.MiddleMCP, hand.MiddlePIP, hand.MiddleDIP, hand.MiddleTip},
	{hand.RingMCP, hand.RingPIP, hand.RingDIP, hand.RingTip},
	{hand.PinkyMCP, hand.PinkyPIP, hand.PinkyDIP, hand.PinkyTip},
}

// Pose builds a snapshot with the wrist at wrist and the given fingers extended.
// The thumb rests out to the side with its tip drooping below the IP joint,
// well away from the index tip.
func Pose(wrist hand.Landmark, fingers hand.FingerState) hand.Snapshot {
	var s hand.Snapshot
	s[hand.Wrist] = wrist

	at := func(dx, dy float64) hand.Landmark {
		return hand.Landmark{X: wrist.X + dx, Y: wrist.Y + dy, Z: wrist.Z}
	}

	s[hand.ThumbCMC] = at(0.06, -0.04)
	s[hand.ThumbMCP] = at(0.10, -0.06)
	s[hand.ThumbIP] = at(0.13, -0.08)
	s[hand.ThumbTip] = at(0.16, -0.07)

	for f, idx := range fingerIndices {
		mcp := mcpOffsets[f]
		s[idx[0]] = at(mcp.X, mcp.Y)
		if fingers[f] {
			s[idx[1]] = at(mcp.X, mcp.Y-0.06)
			s[idx[2]] = at(mcp.X, mcp.Y-0.10)
			s[idx[3]] = at(mcp.X, mcp.Y-0.14)
		} else {
			s[idx[1]] = at(mcp.X, mcp.Y-0.04)
			s[idx[2]] = at(mcp.X, mcp.Y-0.02)
			s[idx[3]] = at(mcp.X, mcp.Y+0.01)
		}
	}
	return s
}

// OpenPalm returns a hand with all four fingers extended.
func OpenPalm() hand.Snapshot {
	return Pose(DefaultWrist, hand.OpenPalm)
}

// PointIndex returns a hand with only the index finger extended, pointing up.
func PointIndex() hand.Snapshot {
	return Pose(DefaultWrist, hand.IndexOnly)
}

// TwoFinger returns a hand with index and middle fingers extended.
func TwoFinger() hand.Snapshot {
	return Pose(DefaultWrist, hand.TwoFinger)
}

// Fist returns a closed hand whose wrist sits at the given image Y.
func Fist(wristY float64) hand.Snapshot {
	w := DefaultWrist
	w.Y = wristY
	return Pose(w, hand.Fist)
}

// Pinch returns a hand with the index extended and the thumb tip touching it.
func Pinch() hand.Snapshot {
	s := PointIndex()
	tip := s[hand.IndexTip]
	s[hand.ThumbTip] = hand.Landmark{X: tip.X + 0.01, Y: tip.Y, Z: tip.Z}
	return s
}

// ThumbsUp returns a fist with the thumb tip raised above the thumb IP joint.
func ThumbsUp() hand.Snapshot {
	s := Fist(DefaultWrist.Y)
	ip := s[hand.ThumbIP]
	s[hand.ThumbTip] = hand.Landmark{X: ip.X, Y: ip.Y - 0.08, Z: ip.Z}
	return s
}

// Points returns the snapshot's landmarks as a slice.
func Points(s hand.Snapshot) []hand.Landmark {
	return append([]hand.Landmark(nil), s[:]...)
}
