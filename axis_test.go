package uigrad

import (
	"math"
	"testing"
)

const axisEpsilon = 1e-4

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// chordLength clips the line through center with direction angle theta
// against rect parametrically and returns the length of the inside part.
func chordLength(rect Rect, center Point, theta float64) float64 {
	dx, dy := math.Cos(theta), math.Sin(theta)
	tmin, tmax := math.Inf(-1), math.Inf(1)
	clip := func(c, d, lo, hi float64) {
		if math.Abs(d) < 1e-15 {
			return
		}
		t1, t2 := (lo-c)/d, (hi-c)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}
	clip(center.X, dx, rect.Min.X, rect.Max.X)
	clip(center.Y, dy, rect.Min.Y, rect.Max.Y)
	return tmax - tmin
}

// shaderFactor evaluates the gradient position the way the UI gradient
// shader does, from the descriptor alone.
func shaderFactor(a AxisDescriptor, p Point) float64 {
	r := a.Rotation * math.Pi / 180
	s := math.Sin(r)
	var d float64
	if math.Abs(s) < 1e-6 {
		d = (p.X - a.AxisIntercept) * math.Cos(r)
	} else {
		d = (a.AxisSlope*p.X - p.Y + a.AxisIntercept) * s
	}
	return 0.5 + d/a.Length
}

func TestComputeAxisAxisAligned(t *testing.T) {
	rect := NewRect(0, 0, 100, 50)
	tests := []struct {
		name     string
		rotation float64
		want     float64
	}{
		{"0", 0, 100},
		{"90", 90, 50},
		{"180", 180, 100},
		{"270", 270, 50},
		{"-90", -90, 50},
		{"360", 360, 100},
		{"450", 450, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAxis(rect, Point{}, tt.rotation)
			if got.Length != tt.want {
				t.Errorf("ComputeAxis(rot=%v).Length = %v, want %v", tt.rotation, got.Length, tt.want)
			}
			if !finite(got.AxisSlope) || !finite(got.AxisIntercept) {
				t.Errorf("non-finite axis line: %+v", got)
			}
		})
	}
}

func TestComputeAxisHorizontalTransition(t *testing.T) {
	rect := NewRect(10, 20, 100, 50)
	got := ComputeAxis(rect, Point{}, 0)

	if got.AxisSlope != 0 {
		t.Errorf("AxisSlope = %v, want 0", got.AxisSlope)
	}
	if got.AxisIntercept != 60 {
		t.Errorf("AxisIntercept = %v, want center x 60", got.AxisIntercept)
	}
	if !got.VerticalAxis() {
		t.Error("expected vertical axis at rotation 0")
	}
}

func TestComputeAxisVerticalTransition(t *testing.T) {
	rect := NewRect(10, 20, 100, 50)
	got := ComputeAxis(rect, Point{}, 90)

	// Axis line is horizontal through the center.
	if math.Abs(got.AxisSlope) > 1e-9 {
		t.Errorf("AxisSlope = %v, want 0", got.AxisSlope)
	}
	if math.Abs(got.AxisIntercept-45) > 1e-9 {
		t.Errorf("AxisIntercept = %v, want center y 45", got.AxisIntercept)
	}
	if got.VerticalAxis() {
		t.Error("axis must not be vertical at rotation 90")
	}
}

func TestComputeAxis45(t *testing.T) {
	rect := Rect{Min: Pt(0, 0), Max: Pt(100, 50)}
	got := ComputeAxis(rect, Point{}, 45)

	want := 50 * math.Sqrt2
	if math.Abs(got.Length-want) > axisEpsilon {
		t.Errorf("Length = %v, want %v", got.Length, want)
	}
	if got.Rotation != 45 {
		t.Errorf("Rotation = %v, want 45", got.Rotation)
	}
	// Transition slope is -1, so the axis slope is 1 through (50, 25).
	if math.Abs(got.AxisSlope-1) > axisEpsilon {
		t.Errorf("AxisSlope = %v, want 1", got.AxisSlope)
	}
	if math.Abs(got.AxisIntercept-(-25)) > axisEpsilon {
		t.Errorf("AxisIntercept = %v, want -25", got.AxisIntercept)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-10, 350},
		{370, 10},
		{360, 0},
		{-360, 0},
		{720, 0},
		{-730, 350},
		{45.5, 45.5},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{-1e-20, 0},
	}

	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); got != tt.want {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComputeAxisReportsNormalizedRotation(t *testing.T) {
	rect := NewRect(0, 0, 10, 10)
	if got := ComputeAxis(rect, Point{}, -10).Rotation; got != 350 {
		t.Errorf("Rotation(-10) = %v, want 350", got)
	}
	if got := ComputeAxis(rect, Point{}, 370).Rotation; got != 10 {
		t.Errorf("Rotation(370) = %v, want 10", got)
	}
}

func TestComputeAxisPeriodic(t *testing.T) {
	rect := NewRect(-20, 5, 80, 30)
	offset := Pt(0.1, -0.2)

	for r := -720.0; r <= 720; r += 7.5 {
		a := ComputeAxis(rect, offset, r)
		b := ComputeAxis(rect, offset, r+360)
		if math.Abs(a.Length-b.Length) > 1e-9 ||
			math.Abs(a.AxisSlope-b.AxisSlope) > 1e-6*math.Max(1, math.Abs(a.AxisSlope)) ||
			math.Abs(a.AxisIntercept-b.AxisIntercept) > 1e-6*math.Max(1, math.Abs(a.AxisIntercept)) {
			t.Errorf("rotation %v and %v differ: %+v vs %+v", r, r+360, a, b)
		}
	}
}

func TestComputeAxisMatchesChord(t *testing.T) {
	rects := []Rect{
		NewRect(0, 0, 100, 50),
		NewRect(-30, 10, 40, 120),
		NewRect(5, 5, 1, 1),
	}
	offsets := []Point{{}, Pt(0.25, 0), Pt(-0.3, 0.4), Pt(0.49, -0.49)}

	for _, rect := range rects {
		for _, off := range offsets {
			center := GradientCenter(rect, off)
			for r := 0.0; r < 360; r += 11.25 {
				got := ComputeAxis(rect, off, r)
				want := chordLength(rect, center, -r*math.Pi/180)
				if math.Abs(got.Length-want) > axisEpsilon {
					t.Errorf("rect %v offset %v rot %v: Length = %v, want %v", rect, off, r, got.Length, want)
				}
			}
		}
	}
}

func TestComputeAxisAlwaysFinite(t *testing.T) {
	rect := NewRect(0, 0, 64, 32)
	rotations := []float64{0, 1e-13, 45, 89.999999, 90, 90.000001, 135, 180, 270, -90, 1e9, -1e9, math.NaN(), math.Inf(1)}

	for _, r := range rotations {
		got := ComputeAxis(rect, Point{}, r)
		for _, v := range []float64{got.Length, got.Rotation, got.AxisSlope, got.AxisIntercept} {
			if !finite(v) {
				t.Errorf("ComputeAxis(rot=%v) = %+v contains non-finite value", r, got)
				break
			}
		}
		if got.Length <= 0 {
			t.Errorf("ComputeAxis(rot=%v).Length = %v, want > 0", r, got.Length)
		}
	}
}

func TestComputeAxisLineThroughCenter(t *testing.T) {
	rect := NewRect(0, 0, 100, 50)
	offset := Pt(0.2, 0.1)
	center := GradientCenter(rect, offset)

	for _, r := range []float64{30, 60, 120, 200, 315} {
		got := ComputeAxis(rect, offset, r)
		y := got.AxisSlope*center.X + got.AxisIntercept
		if math.Abs(y-center.Y) > axisEpsilon {
			t.Errorf("rot %v: axis line misses center: y(%v) = %v, want %v", r, center.X, y, center.Y)
		}
		k := math.Tan(-r * math.Pi / 180)
		if math.Abs(k*got.AxisSlope+1) > axisEpsilon {
			t.Errorf("rot %v: axis slope %v not perpendicular to %v", r, got.AxisSlope, k)
		}
	}
}

func TestGradientCenter(t *testing.T) {
	rect := NewRect(10, 20, 100, 50)
	tests := []struct {
		offset Point
		want   Point
	}{
		{Point{}, Pt(60, 45)},
		{Pt(0.5, 0.5), Pt(110, 70)},
		{Pt(-0.5, -0.5), Pt(10, 20)},
		{Pt(0.25, 0), Pt(85, 45)},
	}
	for _, tt := range tests {
		if got := GradientCenter(rect, tt.offset); got != tt.want {
			t.Errorf("GradientCenter(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestAxisDescriptorVec4(t *testing.T) {
	a := AxisDescriptor{Length: 70.5, Rotation: 45, AxisSlope: 1, AxisIntercept: -25}
	v := a.Vec4()
	if v[0] != 70.5 || v[1] != 45 || v[2] != 1 || v[3] != -25 {
		t.Errorf("Vec4() = %v", v)
	}
}

func TestGradientFactor(t *testing.T) {
	rect := NewRect(0, 0, 100, 50)
	tests := []struct {
		name     string
		rotation float64
		p        Point
		want     float64
	}{
		{"0 left", 0, Pt(0, 25), 0},
		{"0 right", 0, Pt(100, 25), 1},
		{"0 center column", 0, Pt(50, 3), 0.5},
		{"90 bottom", 90, Pt(50, 0), 1},
		{"90 top", 90, Pt(50, 50), 0},
		{"180 left", 180, Pt(0, 25), 1},
		{"45 first crossing", 45, Pt(25, 50), 0},
		{"45 second crossing", 45, Pt(75, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradientFactor(rect, Point{}, tt.rotation, tt.p)
			if math.Abs(got-tt.want) > axisEpsilon {
				t.Errorf("GradientFactor(rot=%v, %v) = %v, want %v", tt.rotation, tt.p, got, tt.want)
			}
		})
	}
}

func TestDescriptorDrivesShaderFactor(t *testing.T) {
	rect := NewRect(-10, 0, 120, 40)
	offset := Pt(0.1, -0.15)
	points := []Point{Pt(-10, 0), Pt(30, 20), Pt(110, 40), Pt(50, 5)}

	for r := 0.0; r < 360; r += 15 {
		desc := ComputeAxis(rect, offset, r)
		for _, p := range points {
			want := GradientFactor(rect, offset, r, p)
			got := shaderFactor(desc, p)
			if math.Abs(got-want) > axisEpsilon {
				t.Errorf("rot %v point %v: shader factor %v, CPU factor %v", r, p, got, want)
			}
		}
	}
}

func BenchmarkComputeAxis(b *testing.B) {
	rect := NewRect(0, 0, 320, 240)
	for i := 0; i < b.N; i++ {
		_ = ComputeAxis(rect, Point{}, float64(i%360))
	}
}
