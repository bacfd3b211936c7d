// Package uigrad provides rotatable linear gradients for UI elements.
//
// # Overview
//
// A gradient is described by an offset of its center inside the element's
// rectangle and a rotation in degrees. From these, ComputeAxis derives an
// AxisDescriptor: the length of the color transition inside the rectangle
// and the line through the gradient center, perpendicular to the
// transition, where the ramp is at its midpoint. The descriptor is packed
// into the shader's _AxisData parameter and the shader reconstructs the
// gradient position of every fragment from it.
//
// # Quick Start
//
//	import "github.com/gogpu/uigrad"
//
//	base, _ := uigrad.NewUIMaterial("UI/Default")
//
//	g := uigrad.NewGradient()
//	g.SetRotation(30)
//	g.SetTexture(uigrad.NewRamp().
//	    AddColorStop(0, uigrad.Hex("#1e3c72")).
//	    AddColorStop(1, uigrad.Hex("#2a5298")).
//	    Bake(uigrad.DefaultRampWidth))
//
//	mat := g.ModifyMaterial(base)
//	g.Update(elementRect, elementPivot)
//
// # Render-state variants
//
// MaterialPool shares one material variant per combination of base
// material, cull mode, depth comparison and fog flag. Variants are
// reference counted and destroyed when the last holder releases them:
//
//	v := uigrad.AcquireVariant(base, gputypes.CullModeBack, gputypes.CompareFunctionLessEqual, false)
//	defer uigrad.ReleaseVariant(v)
//
// # Coordinate System
//
// Rotation is in degrees and normalized into [0, 360). The transition
// runs along the direction (cos(-r), sin(-r)): at rotation 0 the ramp goes
// from the left edge to the right edge, at 90 from the maximum y edge to
// the minimum y edge.
//
// # Logging
//
// uigrad is silent by default. See SetLogger and SetBatchMode.
package uigrad

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
