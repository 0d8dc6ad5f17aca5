package hand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/hand/handtest"
)

func TestClassifyGesture(t *testing.T) {
	p := hand.DefaultParams()

	pinchedPalm := handtest.OpenPalm()
	tip := pinchedPalm[hand.IndexTip]
	pinchedPalm[hand.ThumbTip] = hand.Landmark{X: tip.X + 0.01, Y: tip.Y}

	// Same straight index finger, wrist moved off to the right.
	pointLeft := handtest.PointIndex()
	pointLeft[hand.Wrist] = hand.Landmark{X: 0.9, Y: 0.5}

	tests := []struct {
		name string
		snap hand.Snapshot
		want hand.Gesture
	}{
		{name: "open palm zooms out", snap: handtest.OpenPalm(), want: hand.GestureZoomOut},
		{name: "open palm beats pinch", snap: pinchedPalm, want: hand.GestureZoomOut},
		{name: "pinch zooms in", snap: handtest.Pinch(), want: hand.GestureZoomIn},
		{name: "index points up", snap: handtest.PointIndex(), want: hand.GestureUp},
		{name: "index points left", snap: pointLeft, want: hand.GestureLeft},
		{name: "fist is unknown", snap: handtest.Fist(0.8), want: hand.GestureUnknown},
		{name: "two fingers are unknown", snap: handtest.TwoFinger(), want: hand.GestureUnknown},
		{name: "thumbs up is unknown by default", snap: handtest.ThumbsUp(), want: hand.GestureUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fingers := hand.ExtractFingers(&tt.snap, p)
			assert.Equal(t, tt.want, hand.ClassifyGesture(&tt.snap, fingers, p))
		})
	}
}

func TestClassifyGesture_Like(t *testing.T) {
	p := hand.DefaultParams()
	p.DetectLike = true

	s := handtest.ThumbsUp()
	assert.Equal(t, hand.GestureLike, hand.ClassifyGesture(&s, hand.ExtractFingers(&s, p), p))

	// A fist with the thumb tucked stays unknown.
	fist := handtest.Fist(0.8)
	assert.Equal(t, hand.GestureUnknown, hand.ClassifyGesture(&fist, hand.ExtractFingers(&fist, p), p))
}

func TestClassifyGesture_PinchThreshold(t *testing.T) {
	p := hand.DefaultParams()
	s := handtest.PointIndex()
	tip := s[hand.IndexTip]
	s[hand.ThumbTip] = hand.Landmark{X: tip.X + 0.06, Y: tip.Y}
	fingers := hand.ExtractFingers(&s, p)

	assert.Equal(t, hand.GestureUp, hand.ClassifyGesture(&s, fingers, p))

	p.PinchThreshold = 0.1
	assert.Equal(t, hand.GestureZoomIn, hand.ClassifyGesture(&s, fingers, p))
}

func TestGesturePriority(t *testing.T) {
	assert.Equal(t, []string{"open-palm", "pinch", "thumbs-up", "index-pointing"}, hand.GesturePriority())
}

func TestGesture_IsDirection(t *testing.T) {
	assert.True(t, hand.GestureUp.IsDirection())
	assert.True(t, hand.GestureRight.IsDirection())
	assert.False(t, hand.GestureZoomIn.IsDirection())
	assert.False(t, hand.GestureUnknown.IsDirection())
}
