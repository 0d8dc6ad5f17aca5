package hand

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Cursor is the projected pointing target.
// Start and Aim are pixel coordinates; X and Y are the reported position,
// normalized to [0,1] with Y growing upward.
type Cursor struct {
	Start r2.Vec  `json:"start"`
	Aim   r2.Vec  `json:"aim"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// ProjectCursor casts a ray from the wrist through the midpoint of the index
// and middle fingertips and returns the point p.ProjectionDistance pixels past
// that midpoint, clamped to a width×height frame.
func ProjectCursor(s *Snapshot, width, height int, p Params) Cursor {
	w, h := math.Max(float64(width), 1), math.Max(float64(height), 1)

	c := r2.Scale(0.5, r2.Add(s[IndexTip].Vec2(), s[MiddleTip].Vec2()))
	d := unit2(r2.Sub(c, s[Wrist].Vec2()), p.Epsilon)

	start := r2.Vec{X: c.X * w, Y: c.Y * h}
	aim := r2.Add(start, r2.Scale(p.ProjectionDistance, d))
	aim.X = clamp(aim.X, 0, w-1)
	aim.Y = clamp(aim.Y, 0, h-1)

	return Cursor{
		Start: start,
		Aim:   aim,
		X:     round2(aim.X / w),
		Y:     round2(1 - aim.Y/h),
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
