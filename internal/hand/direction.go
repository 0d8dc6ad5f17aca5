package hand

import "math"

// Direction is one of the four cardinal pointing sectors.
type Direction string

const (
	DirectionUp    Direction = "UP"
	DirectionDown  Direction = "DOWN"
	DirectionLeft  Direction = "LEFT"
	DirectionRight Direction = "RIGHT"
)

// PointingAngle returns the angle in degrees of the wrist→index-tip vector,
// with the vertical axis flipped so that up is positive.
func PointingAngle(s *Snapshot) float64 {
	wrist, tip := s[Wrist], s[IndexTip]
	dx := tip.X - wrist.X
	dy := wrist.Y - tip.Y
	return degrees(math.Atan2(dy, dx))
}

// ClassifyDirection buckets the wrist→index-tip vector into a cardinal direction.
func ClassifyDirection(s *Snapshot) Direction {
	return DirectionFromAngle(PointingAngle(s))
}

// DirectionFromAngle maps an angle in degrees to a sector. Bounds are checked
// in order UP [45,135], DOWN [-135,-45], RIGHT (-45,45), LEFT otherwise.
func DirectionFromAngle(angle float64) Direction {
	switch {
	case angle >= 45 && angle <= 135:
		return DirectionUp
	case angle >= -135 && angle <= -45:
		return DirectionDown
	case angle > -45 && angle < 45:
		return DirectionRight
	default:
		return DirectionLeft
	}
}
