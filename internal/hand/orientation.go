package hand

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Orientation is the palm's yaw and roll in degrees.
type Orientation struct {
	Yaw  float64 `json:"yaw"`
	Roll float64 `json:"roll"`
}

// EstimateOrientation derives yaw from the palm-plane normal and roll from the
// wrist→middle-MCP forward vector.
//
// The normal is cross(indexMCP-wrist, pinkyMCP-wrist). Yaw is atan2(n.x, n.z)
// and is already inside (-180,180]. Roll is atan2(f.y, f.x) plus
// p.RollOffset, folded by NormalizeAngle.
func EstimateOrientation(s *Snapshot, p Params) Orientation {
	w := s[Wrist].Vec3()
	i := s[IndexMCP].Vec3()
	pk := s[PinkyMCP].Vec3()
	m := s[MiddleMCP].Vec3()

	n := unit3(r3.Cross(r3.Sub(i, w), r3.Sub(pk, w)), p.Epsilon)
	f := unit3(r3.Sub(m, w), p.Epsilon)

	return Orientation{
		Yaw:  degrees(math.Atan2(n.X, n.Z)),
		Roll: NormalizeAngle(degrees(math.Atan2(f.Y, f.X)) + p.RollOffset),
	}
}
