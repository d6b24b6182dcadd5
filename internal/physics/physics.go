// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// ClosestPointOnRect returns the point of the axis-aligned rectangle
// [left,right]x[top,bottom] nearest to (px, py).
func ClosestPointOnRect(px, py, left, top, right, bottom float64) (cx, cy float64) {
	return math.Max(left, math.Min(px, right)), math.Max(top, math.Min(py, bottom))
}

// CircleIntersectsRect checks if a circle touches an axis-aligned rectangle.
// Touching edges count as an intersection.
func CircleIntersectsRect(x, y, radius, left, top, right, bottom float64) bool {
	cx, cy := ClosestPointOnRect(x, y, left, top, right, bottom)
	return DistanceSquared(x, y, cx, cy) <= radius*radius
}
