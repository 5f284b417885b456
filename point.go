package arspaint

import (
	"image"
	"math"

	"github.com/gogpu/arspaint/internal/stroke"
)

// Point represents a 2D point or vector in canvas space.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// PointOf converts an integer pixel coordinate.
func PointOf(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

func (p Point) stroke() stroke.Point {
	return stroke.Point{X: p.X, Y: p.Y}
}

// Rect is an axis-aligned rectangle with floating-point corners.
// Min is not required to be above and left of Max: the Transform tool
// produces inverted rectangles when a corner is dragged past its opposite.
type Rect struct {
	Min, Max Point
}

// RectOf converts an integer rectangle.
func RectOf(r image.Rectangle) Rect {
	return Rect{Min: PointOf(r.Min), Max: PointOf(r.Max)}
}

// Width returns Max.X - Min.X, negative for an inverted rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns Max.Y - Min.Y, negative for an inverted rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Size returns the width and height as a vector.
func (r Rect) Size() Point { return r.Max.Sub(r.Min) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// TopLeft returns the Min corner.
func (r Rect) TopLeft() Point { return r.Min }

// TopRight returns the corner at (Max.X, Min.Y).
func (r Rect) TopRight() Point { return Point{X: r.Max.X, Y: r.Min.Y} }

// BottomLeft returns the corner at (Min.X, Max.Y).
func (r Rect) BottomLeft() Point { return Point{X: r.Min.X, Y: r.Max.Y} }

// BottomRight returns the Max corner.
func (r Rect) BottomRight() Point { return r.Max }

// Corners returns the corners in TopLeft, TopRight, BottomRight, BottomLeft order.
func (r Rect) Corners() [4]Point {
	return [4]Point{r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft()}
}
