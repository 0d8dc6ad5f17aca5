package hand

// Gesture is the label produced by the gesture classifier.
type Gesture string

const (
	GestureZoomOut Gesture = "ZOOM_OUT"
	GestureZoomIn  Gesture = "ZOOM_IN"
	GestureLike    Gesture = "LIKE"
	GestureUp      Gesture = Gesture(DirectionUp)
	GestureDown    Gesture = Gesture(DirectionDown)
	GestureLeft    Gesture = Gesture(DirectionLeft)
	GestureRight   Gesture = Gesture(DirectionRight)
	GestureUnknown Gesture = "UNKNOWN"
)

// IsDirection reports whether the gesture is a pointing direction.
func (g Gesture) IsDirection() bool {
	switch g {
	case GestureUp, GestureDown, GestureLeft, GestureRight:
		return true
	}
	return false
}

// gestureInput is what every gesture rule sees.
type gestureInput struct {
	snap    *Snapshot
	fingers FingerState
	pinch   float64
	params  Params
}

// gestureRule is one entry in the classifier's priority list.
type gestureRule struct {
	name  string
	match func(in gestureInput) (Gesture, bool)
}

// gestureRules is evaluated top to bottom; the first match wins.
var gestureRules = []gestureRule{
	{
		name: "open-palm",
		match: func(in gestureInput) (Gesture, bool) {
			return GestureZoomOut, in.fingers == OpenPalm
		},
	},
	{
		name: "pinch",
		match: func(in gestureInput) (Gesture, bool) {
			return GestureZoomIn, in.pinch < in.params.PinchThreshold
		},
	},
	{
		name: "thumbs-up",
		match: func(in gestureInput) (Gesture, bool) {
			if !in.params.DetectLike {
				return "", false
			}
			thumbUp := in.snap[ThumbTip].Y < in.snap[ThumbIP].Y
			return GestureLike, thumbUp && in.fingers == Fist
		},
	},
	{
		name: "index-pointing",
		match: func(in gestureInput) (Gesture, bool) {
			if in.fingers != IndexOnly {
				return "", false
			}
			return Gesture(ClassifyDirection(in.snap)), true
		},
	},
}

// GesturePriority returns the rule names in evaluation order.
func GesturePriority() []string {
	names := make([]string, len(gestureRules))
	for i, r := range gestureRules {
		names[i] = r.name
	}
	return names
}

// ClassifyGesture maps finger states and the pinch distance to a gesture.
// It returns GestureUnknown when no rule matches.
func ClassifyGesture(s *Snapshot, fingers FingerState, p Params) Gesture {
	in := gestureInput{
		snap:    s,
		fingers: fingers,
		pinch:   pinchDistance(s),
		params:  p,
	}
	for _, r := range gestureRules {
		if g, ok := r.match(in); ok {
			return g
		}
	}
	return GestureUnknown
}
