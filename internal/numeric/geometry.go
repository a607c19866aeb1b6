package numeric

import "math"

// Point2D is a point in the plane.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Distance returns the Euclidean distance between p1 and p2.
// NaN and Inf coordinates propagate to the result; no error is raised.
// Finite differences go through math.Hypot, so squaring never overflows
// (the distance from the origin to {1e200, 0} is 1e200, not +Inf).
func Distance(p1, p2 Point2D) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	if math.IsInf(dx, 0) || math.IsInf(dy, 0) || math.IsNaN(dx) || math.IsNaN(dy) {
		// math.Hypot(Inf, NaN) is +Inf; the plain formula keeps the NaN.
		return math.Sqrt(dx*dx + dy*dy)
	}
	return math.Hypot(dx, dy)
}

// DistanceTo returns the Euclidean distance from p to q.
func (p Point2D) DistanceTo(q Point2D) float64 {
	return Distance(p, q)
}

// Area returns the area of a width x height rectangle.
func Area(width, height float64) float64 {
	return width * height
}
