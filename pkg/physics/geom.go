// pkg/physics/geom.go
package physics

import "math"

// NumRotations is the number of discrete headings a ship sprite and its
// thrust vector can take.
const NumRotations = 24

// RotUp is the discrete rotation of a ship pointing straight up (3π/2).
const RotUp = NumRotations * 3 / 4

// Rect is an axis-aligned rectangle in integer level (or texture) pixels.
type Rect struct {
	X, Y int
	W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and other. The second result is false
// when they do not share at least one pixel.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.W, other.X+other.W)
	y1 := min(r.Y+r.H, other.Y+other.H)
	out := Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	if out.Empty() {
		return Rect{}, false
	}
	return out, true
}

// ContainsPoint reports whether (x, y) lies inside r, edges included.
func (r Rect) ContainsPoint(x, y float64) bool {
	return float64(r.X) <= x && x <= float64(r.X+r.W) &&
		float64(r.Y) <= y && y <= float64(r.Y+r.H)
}

// NormalizeAngle maps any angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// DiscreteRot quantizes a heading to one of NumRotations sectors, rounding
// to the nearest sector centre.
func DiscreteRot(rot float64) int {
	sector := int(math.Round(NormalizeAngle(rot) / (2 * math.Pi) * NumRotations))
	return sector % NumRotations
}

// DiscreteAngle returns the heading in radians of a discrete rotation.
func DiscreteAngle(rot int) float64 {
	return float64(rot) / NumRotations * 2 * math.Pi
}
