package object

// ShapeType identifies the outline of a normal orb.
type ShapeType int

const (
	ShapeSemicircle ShapeType = iota
	ShapeTriangle
	ShapeSquare
	ShapePentagon
	ShapeHexagon
	ShapeStar
)

func (s ShapeType) String() string {
	switch s {
	case ShapeSemicircle:
		return "semicircle"
	case ShapeTriangle:
		return "triangle"
	case ShapeSquare:
		return "square"
	case ShapePentagon:
		return "pentagon"
	case ShapeHexagon:
		return "hexagon"
	case ShapeStar:
		return "star"
	default:
		return "unknown"
	}
}

// Shape is one row of the shape table.
type Shape struct {
	Type   ShapeType
	Points int     // Score for a matching catch
	Speed  float64 // Multiplier on the base fall speed
	Weight int     // Relative spawn weight
}

// shapeTable is ordered from most common to rarest.
var shapeTable = [...]Shape{
	{Type: ShapeSemicircle, Points: 5, Speed: 0.4, Weight: 35},
	{Type: ShapeTriangle, Points: 10, Speed: 0.5, Weight: 30},
	{Type: ShapeSquare, Points: 15, Speed: 0.6, Weight: 25},
	{Type: ShapePentagon, Points: 20, Speed: 0.7, Weight: 20},
	{Type: ShapeHexagon, Points: 25, Speed: 0.8, Weight: 15},
	{Type: ShapeStar, Points: 30, Speed: 0.9, Weight: 10},
}

// Shapes returns the shape table.
func Shapes() []Shape {
	return shapeTable[:]
}

// ShapeOf returns the table row for t.
func ShapeOf(t ShapeType) Shape {
	return shapeTable[t]
}
