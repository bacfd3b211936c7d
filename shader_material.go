package uigrad

import (
	"fmt"
	"sync"

	"github.com/gogpu/uigrad/shader"
)

// uiProperties reflects the default UI gradient shader once.
var uiProperties = sync.OnceValues(func() (PropertySet, error) {
	info, err := shader.Reflect(shader.UIGradientSource())
	if err != nil {
		return nil, err
	}
	return PropertiesFromShader(info), nil
})

// PropertiesFromShader converts reflected shader properties into a
// material property description.
func PropertiesFromShader(info *shader.Info) PropertySet {
	props := make(PropertySet, len(info.Properties))
	for _, p := range info.Properties {
		switch p.Kind {
		case shader.Float:
			props[p.Name] = PropertyFloat
		case shader.Vector:
			props[p.Name] = PropertyVector
		case shader.Texture:
			props[p.Name] = PropertyTexture
		}
	}
	return props
}

// NewShaderMaterial creates a material whose properties are those declared
// by the WGSL source.
func NewShaderMaterial(name, source string) (*Material, error) {
	info, err := shader.Reflect(source)
	if err != nil {
		return nil, fmt.Errorf("uigrad: material %q: %w", name, err)
	}
	return NewMaterial(name, PropertiesFromShader(info)), nil
}

// NewUIMaterial creates a material for the default UI gradient shader. It
// supports render-state variants and gradients.
func NewUIMaterial(name string) (*Material, error) {
	props, err := uiProperties()
	if err != nil {
		return nil, fmt.Errorf("uigrad: default UI shader: %w", err)
	}
	return NewMaterial(name, props), nil
}
