package hand

import (
	"fmt"
)

// SignalKind tags the variant held by a Signal.
type SignalKind string

const (
	SignalNone    SignalKind = "none"
	SignalPointer SignalKind = "pointer"
	SignalGesture SignalKind = "gesture"
	SignalPitch   SignalKind = "pitch"
)

// Signal is the single display signal composed for a frame.
// Which fields are meaningful depends on Kind.
type Signal struct {
	Kind SignalKind `json:"kind"`

	// Pointer
	Direction Direction `json:"direction,omitempty"`
	Cursor    *Cursor   `json:"cursor,omitempty"`

	// Gesture
	Gesture Gesture `json:"gesture,omitempty"`

	// Pitch
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// Label is a short stable name for the signal, used for bindings and journaling.
func (s Signal) Label() string {
	switch s.Kind {
	case SignalPointer:
		return "POINT_" + string(s.Direction)
	case SignalGesture:
		return string(s.Gesture)
	case SignalPitch:
		return "PITCH"
	default:
		return "NONE"
	}
}

// Labels lists every label a Signal other than NONE can carry.
func Labels() []string {
	labels := make([]string, 0, 12)
	for _, d := range []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight} {
		labels = append(labels, "POINT_"+string(d))
	}
	for _, g := range []Gesture{GestureZoomOut, GestureZoomIn, GestureLike, GestureUp, GestureDown, GestureLeft, GestureRight} {
		labels = append(labels, string(g))
	}
	return append(labels, "PITCH")
}

// IsLabel reports whether label is one of Labels.
func IsLabel(label string) bool {
	for _, l := range Labels() {
		if l == label {
			return true
		}
	}
	return false
}

// Text is the string shown on the overlay.
func (s Signal) Text() string {
	switch s.Kind {
	case SignalPointer:
		if s.Cursor == nil {
			return fmt.Sprintf("POINT=%s", s.Direction)
		}
		return fmt.Sprintf("POINT=%s x=%.2f y=%.2f", s.Direction, s.Cursor.X, s.Cursor.Y)
	case SignalGesture:
		if s.Gesture.IsDirection() {
			return "DIRECTION=" + string(s.Gesture)
		}
		return "GESTURE=" + string(s.Gesture)
	case SignalPitch:
		return fmt.Sprintf("PITCH=%.1f YAW=%.1f ROLL=%.1f", s.Pitch, s.Yaw, s.Roll)
	default:
		return "NONE"
	}
}

// Frame carries every intermediate result computed for one snapshot,
// together with the composed Signal.
type Frame struct {
	Fingers     FingerState `json:"fingers"`
	Gesture     Gesture     `json:"gesture"`
	Direction   Direction   `json:"direction"`
	Orientation Orientation `json:"orientation"`
	Pitch       float64     `json:"pitch"`
	Pointing    bool        `json:"pointing"`
	Cursor      *Cursor     `json:"cursor,omitempty"`
	Signal      Signal      `json:"signal"`
}

// outputRule is one entry in the composer's priority list.
type outputRule struct {
	name  string
	match func(f *Frame) (Signal, bool)
}

// outputRules is evaluated top to bottom; the first match is emitted.
var outputRules = []outputRule{
	{
		name: "pointer",
		match: func(f *Frame) (Signal, bool) {
			if !f.Pointing {
				return Signal{}, false
			}
			return Signal{Kind: SignalPointer, Direction: f.Direction, Cursor: f.Cursor}, true
		},
	},
	{
		name: "gesture",
		match: func(f *Frame) (Signal, bool) {
			if f.Gesture == GestureUnknown {
				return Signal{}, false
			}
			return Signal{Kind: SignalGesture, Gesture: f.Gesture}, true
		},
	},
	{
		name: "pitch",
		match: func(f *Frame) (Signal, bool) {
			if !f.Fingers.Closed() {
				return Signal{}, false
			}
			return Signal{
				Kind:  SignalPitch,
				Pitch: f.Pitch,
				Yaw:   f.Orientation.Yaw,
				Roll:  f.Orientation.Roll,
			}, true
		},
	},
}

// OutputPriority returns the composer's rule names in evaluation order.
func OutputPriority() []string {
	names := make([]string, len(outputRules))
	for i, r := range outputRules {
		names[i] = r.name
	}
	return names
}

// Composer runs the full per-frame pipeline and owns the tracking state.
// It is not safe for concurrent use; frames must be processed in order.
type Composer struct {
	params Params
	state  TrackingState
}

// NewComposer creates a Composer in the start state.
func NewComposer(p Params) *Composer {
	return &Composer{params: p}
}

// Params returns the tuning values in use.
func (c *Composer) Params() Params {
	return c.params
}

// State returns a copy of the tracking state.
func (c *Composer) State() TrackingState {
	return c.state
}

// Process runs the pipeline for one frame of size width×height pixels.
// A nil snapshot means no hand was detected: nothing is computed, the
// tracking state is left untouched and ok is false.
func (c *Composer) Process(s *Snapshot, width, height int) (f Frame, ok bool) {
	if s == nil {
		return Frame{}, false
	}

	f.Fingers = ExtractFingers(s, c.params)
	f.Gesture = ClassifyGesture(s, f.Fingers, c.params)
	f.Direction = ClassifyDirection(s)
	f.Orientation = EstimateOrientation(s, c.params)
	f.Pitch = IntegratePitch(&c.state, s[Wrist].Y, f.Fingers.Closed(), c.params)

	if f.Fingers == TwoFinger {
		cur := ProjectCursor(s, width, height, c.params)
		f.Pointing = true
		f.Cursor = &cur
	}

	f.Signal = Signal{Kind: SignalNone}
	for _, r := range outputRules {
		if sig, matched := r.match(&f); matched {
			f.Signal = sig
			break
		}
	}
	return f, true
}
