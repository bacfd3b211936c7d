package uigrad

import (
	"math"

	"golang.org/x/image/math/f32"
)

// degenerateEpsilon is the threshold below which a sine or cosine is treated
// as zero, i.e. the corresponding line is exactly horizontal or vertical.
const degenerateEpsilon = 1e-12

// AxisDescriptor holds the geometric parameters a shading stage needs to
// interpolate a directional gradient across a rectangle.
//
// The transition line (perpendicular to the direction of travel) passes
// through the gradient center; Length is the distance between the two points
// where it crosses the rectangle boundary. The axis line runs along the
// direction of travel and is described as y = AxisSlope*x + AxisIntercept.
// When the axis line is vertical (Rotation 0 or 180) AxisSlope is 0 and
// AxisIntercept holds the x coordinate of the line.
//
// All fields are always finite.
type AxisDescriptor struct {
	Length        float64 // Span of the gradient in rectangle units
	Rotation      float64 // Rotation in degrees, normalized to [0, 360)
	AxisSlope     float64 // Slope of the gradient axis line
	AxisIntercept float64 // Intercept of the gradient axis line
}

// Vec4 packs the descriptor in the layout expected by the _AxisData
// shader parameter: (length, rotation, axis slope, axis intercept).
func (a AxisDescriptor) Vec4() f32.Vec4 {
	return f32.Vec4{
		float32(a.Length),
		float32(a.Rotation),
		float32(a.AxisSlope),
		float32(a.AxisIntercept),
	}
}

// VerticalAxis reports whether the axis line is vertical, in which case
// AxisIntercept is an x coordinate rather than a y intercept.
func (a AxisDescriptor) VerticalAxis() bool {
	return math.Abs(math.Sin(a.Rotation*math.Pi/180)) < degenerateEpsilon
}

// NormalizeDegrees maps any angle in degrees into [0, 360).
// Non-finite input yields 0.
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	return math.Mod(math.Mod(deg, 360)+360, 360)
}

// GradientCenter returns the point the gradient is centered on. The offset
// is relative to the rectangle's geometric center in units of its size, so
// (0, 0) is the center and (0.5, 0.5) is the Max corner.
func GradientCenter(rect Rect, offset Point) Point {
	return rect.Min.Add(Pt(0.5+offset.X, 0.5+offset.Y).Scale(rect.Size()))
}

// ComputeAxis computes the axis descriptor for a gradient over rect,
// centered at offset (see GradientCenter) and rotated by rotation degrees.
//
// ComputeAxis is pure and always succeeds. Rotations that make either line
// vertical are handled explicitly so that no infinite slope escapes.
// Results for r and r+360 are identical.
func ComputeAxis(rect Rect, offset Point, rotation float64) AxisDescriptor {
	r := NormalizeDegrees(rotation)
	center := GradientCenter(rect, offset)

	// The transition line is y = k*x - b with k = tan(-r).
	theta := -r * math.Pi / 180
	sin, cos := math.Sincos(theta)

	var (
		length   float64
		axisK    float64
		axisB    float64
		vertical = math.Abs(cos) < degenerateEpsilon
		flat     = math.Abs(sin) < degenerateEpsilon
	)

	switch {
	case vertical:
		// Transition line is x = cx and spans the full height.
		length = rect.Height()
		axisK = 0
		axisB = center.Y
	case flat:
		// Transition line is y = cy and spans the full width; the axis is
		// the vertical line x = cx.
		length = rect.Width()
		axisK = 0
		axisB = center.X
	default:
		k := sin / cos
		b := k*center.X - center.Y
		left := clipEdge(rect, k, b, rect.Min.X)
		right := clipEdge(rect, k, b, rect.Max.X)
		length = left.Distance(right)

		// The axis line is perpendicular to the transition line.
		axisK = math.Tan(theta - math.Pi/2)
		axisB = -(axisK*center.X - center.Y)
	}

	return AxisDescriptor{
		Length:        length,
		Rotation:      r,
		AxisSlope:     axisK,
		AxisIntercept: axisB,
	}
}

// clipEdge returns the point where the line y = k*x - b leaves rect on the
// side of the vertical edge at x. If the line crosses that edge outside the
// rectangle's vertical extent, the crossing with the bottom or top edge is
// used instead. k must be non-zero and finite.
func clipEdge(rect Rect, k, b, x float64) Point {
	y := k*x - b
	switch {
	case y < rect.Min.Y:
		return Pt((rect.Min.Y+b)/k, rect.Min.Y)
	case y > rect.Max.Y:
		return Pt((rect.Max.Y+b)/k, rect.Max.Y)
	default:
		return Pt(x, y)
	}
}

// GradientFactor returns the interpolation factor of p for a gradient over
// rect: the signed distance of p from the gradient axis line, normalized by
// the span length and shifted so the axis line maps to 0.5. The two points
// where the transition line leaves the rectangle map to 0 and 1. Values
// outside [0, 1] are returned unclamped.
//
// It is the CPU reference of what the UI gradient shader computes from an
// AxisDescriptor.
func GradientFactor(rect Rect, offset Point, rotation float64, p Point) float64 {
	desc := ComputeAxis(rect, offset, rotation)
	if desc.Length == 0 {
		return 0.5
	}
	center := GradientCenter(rect, offset)

	// Distance from the axis line is measured along the transition line.
	sin, cos := math.Sincos(-desc.Rotation * math.Pi / 180)
	d := p.Sub(center)
	return 0.5 + (d.X*cos+d.Y*sin)/desc.Length
}
