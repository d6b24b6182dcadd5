package draw

import "math"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockLeftHalf  = '▌'
	BlockLight     = '░'
)

// RegularPolygon fills dst with the vertices of a regular polygon centered on
// (cx, cy). The number of vertices is len(dst); the first points along angle.
func RegularPolygon(dst []Point, cx, cy, r, angle float64) []Point {
	n := len(dst)
	for i := range dst {
		a := angle + float64(i)*2*math.Pi/float64(n)
		dst[i] = Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return dst
}

// Star fills dst with alternating outer and inner vertices. len(dst) must be
// even: a five-pointed star needs ten points.
func Star(dst []Point, cx, cy, outer, inner, angle float64) []Point {
	n := len(dst)
	for i := range dst {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := angle - math.Pi/2 + float64(i)*2*math.Pi/float64(n)
		dst[i] = Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return dst
}

// Semicircle fills dst with a half disc whose flat side faces angle+π/2.
// The first and last points close the diameter.
func Semicircle(dst []Point, cx, cy, r, angle float64) []Point {
	n := len(dst)
	if n < 2 {
		return dst
	}
	for i := range dst {
		a := angle + math.Pi*float64(i)/float64(n-1)
		dst[i] = Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return dst
}

// Heart fills dst with a heart outline (the classic parametric curve) of
// roughly radius r, tip pointing down.
func Heart(dst []Point, cx, cy, r float64) []Point {
	n := len(dst)
	scale := r / 16
	for i := range dst {
		t := 2 * math.Pi * float64(i) / float64(n)
		s := math.Sin(t)
		x := 16 * s * s * s
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		dst[i] = Point{X: cx + x*scale, Y: cy - y*scale}
	}
	return dst
}

// Circle fills dst with a regular polygon approximating a circle.
func Circle(dst []Point, cx, cy, r float64) []Point {
	return RegularPolygon(dst, cx, cy, r, 0)
}
