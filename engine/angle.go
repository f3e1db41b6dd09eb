package engine

import "math"

const (
	Pi     = math.Pi
	Pi2    = 2 * math.Pi
	HalfPi = math.Pi / 2
)

// NormalizeAngle reduces angle to [0, 2π).
func NormalizeAngle(angle float64) float64 {
	angle = math.Remainder(angle, Pi2)
	if angle < 0 {
		angle += Pi2
	}
	// a tiny negative remainder can round up to exactly 2π
	if angle >= Pi2 {
		angle = 0
	}
	return angle
}
