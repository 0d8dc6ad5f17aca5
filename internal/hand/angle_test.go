package hand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayusman/mudra/internal/hand"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{90, 90},
		{179, 179},
		{180, -180},
		{-180, -180},
		{181, -179},
		{-181, 179},
		{360, 0},
		{540, -180},
		{-720, 0},
		{1090, 10},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, hand.NormalizeAngle(tt.in), 1e-9, "NormalizeAngle(%v)", tt.in)
	}
}

func TestNormalizeAngle_Idempotent(t *testing.T) {
	for x := -1000.0; x <= 1000; x += 7.3 {
		once := hand.NormalizeAngle(x)
		assert.InDelta(t, once, hand.NormalizeAngle(once), 1e-9, "x=%v", x)
		assert.GreaterOrEqual(t, once, -180.0)
		assert.Less(t, once, 180.0)
	}

	// Just below the fold must stay inside the range after a second pass.
	once := hand.NormalizeAngle(-180 - 1e-12)
	assert.InDelta(t, once, hand.NormalizeAngle(once), 1e-9)
	assert.Less(t, hand.NormalizeAngle(once), 180.0)
}

func TestNormalizeAngle_Periodic(t *testing.T) {
	for _, x := range []float64{-170, -45, 0, 12.5, 90, 179.5} {
		for k := -3; k <= 3; k++ {
			assert.InDelta(t, hand.NormalizeAngle(x), hand.NormalizeAngle(x+360*float64(k)), 1e-9,
				"x=%v k=%d", x, k)
		}
	}
}
