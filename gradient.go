package uigrad

import (
	"log/slog"

	"github.com/gogpu/gpucontext"
)

// Gradient adapts a UI element to the gradient shader. It owns one derived
// material per base material and keeps its _AxisData and _GradientTex
// parameters current.
//
// The host drives it explicitly:
//
//	g := uigrad.NewGradient()
//	g.SetTexture(ramp.Bake(0))
//	mat := g.ModifyMaterial(base)     // when the element's material changes
//	g.Update(elementRect, pivot)      // once per frame; cheap when nothing moved
//	...
//	g.Close()
//
// Gradient is not safe for concurrent use.
type Gradient struct {
	offset   Point
	rotation float64
	texture  gpucontext.Texture

	base     *Material
	material *Material

	rect    Rect
	pivot   Point
	placed  bool
	axis    AxisDescriptor
	updates int
}

// NewGradient creates a gradient centered on its element with no rotation.
func NewGradient() *Gradient {
	return &Gradient{}
}

// Rotation returns the rotation in degrees as set by the caller.
func (g *Gradient) Rotation() float64 { return g.rotation }

// SetRotation sets the rotation in degrees and refreshes the axis if it
// changed.
func (g *Gradient) SetRotation(deg float64) {
	if g.rotation == deg {
		return
	}
	g.rotation = deg
	g.refresh()
}

// Offset returns the gradient center offset (see GradientCenter).
func (g *Gradient) Offset() Point { return g.offset }

// SetOffset moves the gradient center and refreshes the axis if it changed.
func (g *Gradient) SetOffset(offset Point) {
	if g.offset == offset {
		return
	}
	g.offset = offset
	g.refresh()
}

// Texture returns the color ramp texture.
func (g *Gradient) Texture() gpucontext.Texture { return g.texture }

// SetTexture sets the color ramp texture bound to _GradientTex.
func (g *Gradient) SetTexture(tex gpucontext.Texture) {
	g.texture = tex
	g.applyTexture()
}

// Material returns the derived gradient material, or nil before the first
// ModifyMaterial.
func (g *Gradient) Material() *Material { return g.material }

// Axis returns the most recently computed axis descriptor.
func (g *Gradient) Axis() AxisDescriptor { return g.axis }

// ModifyMaterial returns the gradient material derived from base. The
// derived material is created on the first call and whenever base changes;
// the previous one is destroyed. It is named "Gradient, <base>" and has
// GradientKeyword enabled. A nil base returns nil.
func (g *Gradient) ModifyMaterial(base *Material) *Material {
	if base == nil {
		return nil
	}
	if g.base != base {
		if g.material != nil {
			g.material.Destroy()
		}
		g.material = base.Clone()
		g.material.SetName("Gradient, " + base.Name())
		g.material.EnableKeyword(GradientKeyword)
		g.base = base
	}

	g.applyTexture()
	g.refresh()
	return g.material
}

// Update tells the gradient where its element is: rect in the element's
// local space and pivot, the element position relative to the canvas in
// canvas units. The axis is recomputed only when either differs from the
// previous call. Update reports whether it recomputed.
func (g *Gradient) Update(rect Rect, pivot Point) bool {
	if g.placed && g.rect == rect && g.pivot == pivot {
		return false
	}
	g.rect, g.pivot, g.placed = rect, pivot, true
	g.refresh()
	return true
}

// Updates returns how many times the axis has been recomputed.
func (g *Gradient) Updates() int { return g.updates }

// Close destroys the derived material. The gradient can be reused with a
// new ModifyMaterial call.
func (g *Gradient) Close() {
	if g.material != nil {
		g.material.Destroy()
	}
	g.material = nil
	g.base = nil
}

// refresh recomputes the axis and writes it to the derived material.
func (g *Gradient) refresh() {
	if !g.placed {
		return
	}
	g.axis = ComputeAxis(g.rect.Translate(g.pivot), g.offset, g.rotation)
	g.updates++

	if g.material == nil {
		return
	}
	if err := g.material.SetVector(PropAxisData, g.axis.Vec4()); err != nil {
		Logger().Debug("uigrad: gradient axis not applied", slog.Any("err", err))
	}
}

func (g *Gradient) applyTexture() {
	if g.material == nil {
		return
	}
	if err := g.material.SetTexture(PropGradientTex, g.texture); err != nil {
		Logger().Debug("uigrad: gradient texture not applied", slog.Any("err", err))
	}
}
