// Package hand turns per-frame hand landmark snapshots into semantic signals:
// finger states, gestures, pointing direction, palm orientation, an accumulated
// pitch rotation and a projected pointing cursor.
package hand

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// ErrLandmarkCount is returned when a landmark list does not hold exactly NumLandmarks points.
var ErrLandmarkCount = errors.New("hand snapshot needs exactly 21 landmarks")

// Landmark is a keypoint in normalized image coordinates.
// X and Y lie in [0,1] and grow rightward and downward; Z is relative depth.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec2 returns the landmark projected onto the image plane.
func (l Landmark) Vec2() r2.Vec {
	return r2.Vec{X: l.X, Y: l.Y}
}

// Vec3 returns the landmark as a 3D vector.
func (l Landmark) Vec3() r3.Vec {
	return r3.Vec{X: l.X, Y: l.Y, Z: l.Z}
}

// Snapshot is the 21-landmark skeleton of one hand at one instant.
// A frame without a detected hand is represented by a nil *Snapshot.
type Snapshot [NumLandmarks]Landmark

// NewSnapshot builds a Snapshot from a variable-length landmark list.
func NewSnapshot(points []Landmark) (*Snapshot, error) {
	if len(points) != NumLandmarks {
		return nil, fmt.Errorf("%w: got %d", ErrLandmarkCount, len(points))
	}
	var s Snapshot
	copy(s[:], points)
	return &s, nil
}

// Translate returns a copy of the snapshot shifted by (dx, dy, dz).
func (s Snapshot) Translate(dx, dy, dz float64) Snapshot {
	for i := range s {
		s[i].X += dx
		s[i].Y += dy
		s[i].Z += dz
	}
	return s
}

// pinchDistance is the image-plane distance between thumb tip and index tip.
func pinchDistance(s *Snapshot) float64 {
	return r2.Norm(r2.Sub(s[ThumbTip].Vec2(), s[IndexTip].Vec2()))
}

// unit2 normalizes v, with eps added to the length so zero vectors map to zero.
func unit2(v r2.Vec, eps float64) r2.Vec {
	return r2.Scale(1/(r2.Norm(v)+eps), v)
}

func unit3(v r3.Vec, eps float64) r3.Vec {
	return r3.Scale(1/(r3.Norm(v)+eps), v)
}
