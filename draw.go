package pixfill

import (
	"fmt"
	"image"
	"math"
)

// ShapeType is the geometric shape drawn by the shape tools.
type ShapeType string

const (
	Line      ShapeType = "line"
	Rectangle ShapeType = "rectangle"
	Circle    ShapeType = "circle"
	Triangle  ShapeType = "triangle"
)

// DrawShape draws the outline of the shape spanned by the start and end points.
// A line connects the two points, a rectangle has them as opposite corners,
// a circle is centered at start and passes through end and a triangle
// has its apex on the start row, halfway between the two points.
func (c *Canvas) DrawShape(shape ShapeType, start, end image.Point, width float32, col Color) error {
	switch shape {
	case Line:
		c.StrokePath([]image.Point{start, end}, false, width, col)
	case Rectangle:
		c.StrokePath([]image.Point{
			start,
			{X: end.X, Y: start.Y},
			end,
			{X: start.X, Y: end.Y},
		}, true, width, col)
	case Circle:
		c.StrokeCircle(start, radius(start, end), width, col)
	case Triangle:
		c.StrokePath([]image.Point{
			{X: start.X + (end.X-start.X)/2, Y: start.Y},
			{X: start.X, Y: end.Y},
			end,
		}, true, width, col)
	default:
		return fmt.Errorf("unsupported shape type: %q", shape)
	}
	return nil
}

// radius returns the distance between two points.
func radius(a, b image.Point) float32 {
	d := a.Sub(b)
	return float32(math.Hypot(float64(d.X), float64(d.Y)))
}
