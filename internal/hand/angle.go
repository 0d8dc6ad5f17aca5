package hand

import "math"

// NormalizeAngle folds an angle in degrees into [-180, 180) using a floored
// modulo: ((a+180) mod 360) - 180.
func NormalizeAngle(a float64) float64 {
	m := math.Mod(a+180, 360)
	if m < 0 {
		m += 360
	}
	// m+360 can round up to exactly 360 for tiny negative m.
	if m >= 360 {
		m -= 360
	}
	return m - 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
