// Package shader reflects and compiles the WGSL shaders behind uigrad
// materials.
//
// Reflection turns a shader's bindable parameters into a fixed list of
// named properties: members of uniform structs (and plain uniform
// globals) become float or vector properties, bound textures become
// texture properties. A material built from the shader exposes exactly
// that list, so capability checks are lookups rather than runtime probes.
package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

//go:embed shaders/ui_gradient.wgsl
var uiGradientWGSL string

// UIGradientSource returns the WGSL source of the default UI gradient
// shader. It declares _CullMode, _ZTestMode, _UseUIFog, _AxisData and
// _GradientTex.
func UIGradientSource() string {
	return uiGradientWGSL
}

// ErrNoEntryPoints is returned when a shader declares no entry points.
var ErrNoEntryPoints = errors.New("shader: no entry points")

// Kind is the value type of a reflected property.
type Kind uint8

const (
	// Float is a scalar f32 property.
	Float Kind = iota + 1
	// Vector is a vec4<f32> property.
	Vector
	// Texture is a bound texture.
	Texture
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Vector:
		return "vector"
	case Texture:
		return "texture"
	default:
		return "unknown"
	}
}

// Property is a configurable shader parameter.
type Property struct {
	Name    string
	Kind    Kind
	Group   uint32 // Bind group of the global that holds the property
	Binding uint32 // Binding of the global that holds the property
}

// Info is the reflected interface of a shader.
type Info struct {
	// Properties are sorted by name.
	Properties []Property
	// EntryPoints lists the entry point names in declaration order.
	EntryPoints []string
}

// Property returns the property called name.
func (info *Info) Property(name string) (Property, bool) {
	i := sort.Search(len(info.Properties), func(i int) bool {
		return info.Properties[i].Name >= name
	})
	if i < len(info.Properties) && info.Properties[i].Name == name {
		return info.Properties[i], true
	}
	return Property{}, false
}

// Reflect parses and lowers WGSL source and returns its properties.
// Uniform members of types other than f32 and vec4<f32>, samplers and
// storage buffers are not properties and are skipped.
func Reflect(source string) (*Info, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("shader: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("shader: lower: %w", err)
	}
	if len(module.EntryPoints) == 0 {
		return nil, ErrNoEntryPoints
	}

	info := &Info{}
	for _, ep := range module.EntryPoints {
		info.EntryPoints = append(info.EntryPoints, ep.Name)
	}

	for _, gv := range module.GlobalVariables {
		var group, binding uint32
		if gv.Binding != nil {
			group, binding = gv.Binding.Group, gv.Binding.Binding
		}
		inner := typeInner(module, gv.Type)

		switch gv.Space {
		case ir.SpaceUniform:
			if st, ok := inner.(ir.StructType); ok {
				for _, m := range st.Members {
					if kind, ok := valueKind(typeInner(module, m.Type)); ok {
						info.Properties = append(info.Properties, Property{Name: m.Name, Kind: kind, Group: group, Binding: binding})
					}
				}
				continue
			}
			if kind, ok := valueKind(inner); ok {
				info.Properties = append(info.Properties, Property{Name: gv.Name, Kind: kind, Group: group, Binding: binding})
			}
		case ir.SpaceHandle:
			if _, ok := inner.(ir.ImageType); ok {
				info.Properties = append(info.Properties, Property{Name: gv.Name, Kind: Texture, Group: group, Binding: binding})
			}
		}
	}

	sort.Slice(info.Properties, func(i, j int) bool {
		return info.Properties[i].Name < info.Properties[j].Name
	})
	return info, nil
}

func typeInner(module *ir.Module, h ir.TypeHandle) ir.TypeInner {
	if int(h) >= len(module.Types) {
		return nil
	}
	return module.Types[h].Inner
}

// valueKind classifies a uniform value type.
func valueKind(inner ir.TypeInner) (Kind, bool) {
	switch t := inner.(type) {
	case ir.ScalarType:
		if t.Kind == ir.ScalarFloat && t.Width == 4 {
			return Float, true
		}
	case ir.VectorType:
		if t.Size == ir.Vec4 && t.Scalar.Kind == ir.ScalarFloat && t.Scalar.Width == 4 {
			return Vector, true
		}
	}
	return 0, false
}

// Compile compiles WGSL source to SPIR-V words.
func Compile(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to compile: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
