package uigrad

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/math/f32"
)

// Shader parameter names understood by the UI gradient shader.
const (
	PropCullMode    = "_CullMode"    // float: gputypes.CullMode
	PropZTestMode   = "_ZTestMode"   // float: gputypes.CompareFunction
	PropUseUIFog    = "_UseUIFog"    // float: 0 or 1
	PropAxisData    = "_AxisData"    // vec4: AxisDescriptor.Vec4
	PropGradientTex = "_GradientTex" // texture: baked Ramp
)

// GradientKeyword is the shader keyword enabled on gradient materials.
const GradientKeyword = "UI_GRADIENT"

// Material errors.
var (
	// ErrUnknownProperty is returned when setting a parameter the material's
	// shader does not declare.
	ErrUnknownProperty = errors.New("uigrad: unknown material property")

	// ErrPropertyKind is returned when a parameter is set with a value of
	// the wrong kind (e.g. a float on a texture slot).
	ErrPropertyKind = errors.New("uigrad: property kind mismatch")

	// ErrMaterialDestroyed is returned when modifying a destroyed material.
	ErrMaterialDestroyed = errors.New("uigrad: material destroyed")
)

// PropertyKind is the value type of a material property.
type PropertyKind uint8

const (
	PropertyFloat PropertyKind = iota + 1
	PropertyVector
	PropertyTexture
)

// String returns the property kind name.
func (k PropertyKind) String() string {
	switch k {
	case PropertyFloat:
		return "float"
	case PropertyVector:
		return "vector"
	case PropertyTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// PropertySet describes the fixed set of configurable properties a material
// exposes, keyed by shader parameter name. It is derived once from the
// shader (see package shader) and shared, read-only, by every material
// cloned from the same base.
type PropertySet map[string]PropertyKind

// Has reports whether name is declared with the given kind.
func (s PropertySet) Has(name string, kind PropertyKind) bool {
	k, ok := s[name]
	return ok && k == kind
}

// Names returns the declared property names in sorted order.
func (s PropertySet) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

var materialIDs atomic.Uint64

// Material is a shader parameter block: a name, a fixed property
// description and the current values of those properties.
//
// Material is not safe for concurrent modification.
type Material struct {
	id        uint64
	name      string
	props     PropertySet
	floats    map[string]float32
	vectors   map[string]f32.Vec4
	textures  map[string]gpucontext.Texture
	keywords  map[string]struct{}
	destroyed bool
}

// NewMaterial creates a material exposing props. The property set is not
// copied and must not be modified afterwards.
func NewMaterial(name string, props PropertySet) *Material {
	if props == nil {
		props = PropertySet{}
	}
	return &Material{
		id:       materialIDs.Add(1),
		name:     name,
		props:    props,
		floats:   make(map[string]float32),
		vectors:  make(map[string]f32.Vec4),
		textures: make(map[string]gpucontext.Texture),
		keywords: make(map[string]struct{}),
	}
}

// ID returns the process-unique identity of the material.
func (m *Material) ID() uint64 { return m.id }

// Name returns the human-readable label.
func (m *Material) Name() string { return m.name }

// SetName changes the human-readable label.
func (m *Material) SetName(name string) { m.name = name }

// Properties returns the material's property description.
func (m *Material) Properties() PropertySet { return m.props }

// HasProperty reports whether the material declares a property called name.
func (m *Material) HasProperty(name string) bool {
	_, ok := m.props[name]
	return ok
}

func (m *Material) checkSet(name string, kind PropertyKind) error {
	if m.destroyed {
		return fmt.Errorf("set %s on %q: %w", name, m.name, ErrMaterialDestroyed)
	}
	k, ok := m.props[name]
	if !ok {
		return fmt.Errorf("%q has no %s: %w", m.name, name, ErrUnknownProperty)
	}
	if k != kind {
		return fmt.Errorf("%q property %s is %s, not %s: %w", m.name, name, k, kind, ErrPropertyKind)
	}
	return nil
}

// SetFloat sets a float property.
func (m *Material) SetFloat(name string, v float32) error {
	if err := m.checkSet(name, PropertyFloat); err != nil {
		return err
	}
	m.floats[name] = v
	return nil
}

// Float returns a float property and whether it has been set.
func (m *Material) Float(name string) (float32, bool) {
	v, ok := m.floats[name]
	return v, ok
}

// SetVector sets a vec4 property.
func (m *Material) SetVector(name string, v f32.Vec4) error {
	if err := m.checkSet(name, PropertyVector); err != nil {
		return err
	}
	m.vectors[name] = v
	return nil
}

// Vector returns a vec4 property and whether it has been set.
func (m *Material) Vector(name string) (f32.Vec4, bool) {
	v, ok := m.vectors[name]
	return v, ok
}

// SetTexture binds a texture property. A nil texture unbinds it.
func (m *Material) SetTexture(name string, tex gpucontext.Texture) error {
	if err := m.checkSet(name, PropertyTexture); err != nil {
		return err
	}
	if tex == nil {
		delete(m.textures, name)
		return nil
	}
	m.textures[name] = tex
	return nil
}

// Texture returns the texture bound to name, or nil.
func (m *Material) Texture(name string) gpucontext.Texture {
	return m.textures[name]
}

// EnableKeyword turns on a shader keyword.
func (m *Material) EnableKeyword(kw string) {
	m.keywords[kw] = struct{}{}
}

// DisableKeyword turns off a shader keyword.
func (m *Material) DisableKeyword(kw string) {
	delete(m.keywords, kw)
}

// IsKeywordEnabled reports whether kw is on.
func (m *Material) IsKeywordEnabled(kw string) bool {
	_, ok := m.keywords[kw]
	return ok
}

// Keywords returns the enabled keywords in sorted order.
func (m *Material) Keywords() []string {
	return slices.Sorted(maps.Keys(m.keywords))
}

// Clone returns a new material with a fresh identity, the same property
// description and a copy of every parameter value and keyword.
func (m *Material) Clone() *Material {
	c := NewMaterial(m.name, m.props)
	maps.Copy(c.floats, m.floats)
	maps.Copy(c.vectors, m.vectors)
	maps.Copy(c.textures, m.textures)
	maps.Copy(c.keywords, m.keywords)
	return c
}

// Destroy releases the material's parameter storage. Further Set calls
// fail with ErrMaterialDestroyed. Destroy is idempotent. Bound textures are
// not owned by the material and are left alone.
func (m *Material) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	clear(m.floats)
	clear(m.vectors)
	clear(m.textures)
}

// Destroyed reports whether Destroy has been called.
func (m *Material) Destroyed() bool { return m.destroyed }

// String returns the material name and identity.
func (m *Material) String() string {
	return fmt.Sprintf("%s#%d", m.name, m.id)
}
