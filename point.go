package uigrad

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
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

// Scale returns the component-wise product of two points.
func (p Point) Scale(q Point) Point {
	return Point{X: p.X * q.X, Y: p.Y * q.Y}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Rect is an axis-aligned rectangle described by its minimum and maximum
// corners. Y grows upwards; callers with a Y-down coordinate system get the
// mirrored rotation sense.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from an origin and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Min: Pt(x, y), Max: Pt(x+w, y+h)}
}

// Size returns the width and height of the rectangle as a vector.
func (r Rect) Size() Point {
	return r.Max.Sub(r.Min)
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the geometric center.
func (r Rect) Center() Point {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}
