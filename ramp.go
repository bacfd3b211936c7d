package uigrad

import (
	"image"
	"sort"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/uigrad/internal/color"
)

// DefaultRampWidth is the number of texels in a baked ramp when the caller
// does not ask for a specific width.
const DefaultRampWidth = 256

// ColorStop represents a color at a specific position in a ramp.
type ColorStop struct {
	Offset float64 // Position in the ramp, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Ramp is the color lookup of a gradient. Colors between stops are
// interpolated in linear light, positions outside [0, 1] take the edge
// colors.
//
// Example:
//
//	ramp := uigrad.NewRamp().
//	    AddColorStop(0, uigrad.Hex("#ff0000")).
//	    AddColorStop(1, uigrad.Hex("#0000ff"))
//	tex := ramp.Bake(uigrad.DefaultRampWidth)
type Ramp struct {
	Stops []ColorStop
}

// NewRamp creates an empty ramp.
func NewRamp() *Ramp {
	return &Ramp{}
}

// AddColorStop adds a color stop at the specified offset.
// Returns the ramp for method chaining.
func (r *Ramp) AddColorStop(offset float64, c RGBA) *Ramp {
	r.Stops = append(r.Stops, ColorStop{Offset: offset, Color: c})
	return r
}

// ColorAt returns the ramp color at position t.
func (r *Ramp) ColorAt(t float64) RGBA {
	return colorAtOffset(sortStops(r.Stops), t)
}

// Bake samples the ramp into a one-texel-high RGBA8 strip suitable for the
// _GradientTex parameter. Texel i samples the ramp at its center,
// (i+0.5)/width. A width below 1 selects DefaultRampWidth.
func (r *Ramp) Bake(width int) *RampTexture {
	if width < 1 {
		width = DefaultRampWidth
	}
	sorted := sortStops(r.Stops)
	pix := make([]byte, width*4)
	for i := 0; i < width; i++ {
		t := (float64(i) + 0.5) / float64(width)
		c := color.F32ToU8(toColorF32(colorAtOffset(sorted, t)))
		pix[i*4+0] = c.R
		pix[i*4+1] = c.G
		pix[i*4+2] = c.B
		pix[i*4+3] = c.A
	}
	return &RampTexture{width: width, pix: pix}
}

// RampTexture is a baked ramp held in CPU memory. It implements
// gpucontext.Texture so it can stand in for a GPU texture in a material
// until the host uploads it.
type RampTexture struct {
	width int
	pix   []byte
}

// Width returns the number of texels.
func (t *RampTexture) Width() int { return t.width }

// Height is always 1.
func (t *RampTexture) Height() int { return 1 }

// Format returns the texel format of Data.
func (t *RampTexture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8UnormSrgb
}

// Data returns the non-premultiplied RGBA texels. The slice must not be
// modified.
func (t *RampTexture) Data() []byte { return t.pix }

// Texel returns texel i as a color. Indices outside the strip are clamped.
func (t *RampTexture) Texel(i int) RGBA {
	i = max(0, min(i, t.width-1))
	c := color.U8ToF32(color.ColorU8{R: t.pix[i*4], G: t.pix[i*4+1], B: t.pix[i*4+2], A: t.pix[i*4+3]})
	return RGBA{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// Image returns a copy of the strip as an image.
func (t *RampTexture) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, 1))
	copy(img.Pix, t.pix)
	return img
}

// sortStops returns a copy of stops sorted by offset.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// colorAtOffset returns the interpolated color at t. Stops must be sorted.
func colorAtOffset(sorted []ColorStop, t float64) RGBA {
	switch len(sorted) {
	case 0:
		return Transparent
	case 1:
		return sorted[0].Color
	}

	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Offset >= t
	})
	if idx == 0 {
		return sorted[0].Color
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1].Color
	}

	s1, s2 := sorted[idx-1], sorted[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	return interpolateColorLinear(s1.Color, s2.Color, (t-s1.Offset)/(s2.Offset-s1.Offset))
}

// interpolateColorLinear interpolates two sRGB colors in linear light.
func interpolateColorLinear(c1, c2 RGBA, t float64) RGBA {
	l1 := color.SRGBToLinearColor(toColorF32(c1))
	l2 := color.SRGBToLinearColor(toColorF32(c2))

	t32 := float32(t)
	mixed := color.LinearToSRGBColor(color.ColorF32{
		R: l1.R + t32*(l2.R-l1.R),
		G: l1.G + t32*(l2.G-l1.G),
		B: l1.B + t32*(l2.B-l1.B),
		A: l1.A + t32*(l2.A-l1.A),
	})
	return RGBA{R: float64(mixed.R), G: float64(mixed.G), B: float64(mixed.B), A: float64(mixed.A)}
}

func toColorF32(c RGBA) color.ColorF32 {
	return color.ColorF32{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A)}
}
