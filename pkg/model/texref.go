package model

import (
	"fmt"
	"strings"

	"github.com/Faultbox/blockforge/pkg/resource"
)

// TextureRef points at a texture. It is either a variable ("#name") awaiting
// binding through a model's texture table, or a concrete namespaced resource.
// The zero value is invalid; use VariableRef, ConcreteRef or ParseTextureRef.
type TextureRef struct {
	variable string
	resource resource.Resource
}

// VariableRef returns a symbolic reference to the texture variable name.
func VariableRef(name string) TextureRef {
	return TextureRef{variable: name}
}

// ConcreteRef returns a reference to a concrete texture resource.
func ConcreteRef(r resource.Resource) TextureRef {
	return TextureRef{resource: r}
}

// ParseTextureRef parses "#name" as a variable and anything else as a resource identifier.
func ParseTextureRef(s string) (TextureRef, error) {
	if name, ok := strings.CutPrefix(s, "#"); ok {
		if name == "" {
			return TextureRef{}, fmt.Errorf("%w: empty texture variable", ErrMalformedIdentifier)
		}
		return VariableRef(name), nil
	}

	r, err := resource.Parse(s)
	if err != nil {
		return TextureRef{}, err
	}
	return ConcreteRef(r), nil
}

// IsVariable reports whether the reference is still symbolic.
func (t TextureRef) IsVariable() bool {
	return t.variable != ""
}

// Variable returns the variable name, if the reference is symbolic.
func (t TextureRef) Variable() (string, bool) {
	return t.variable, t.variable != ""
}

// Resource returns the concrete resource, if the reference is concrete.
func (t TextureRef) Resource() (resource.Resource, bool) {
	if t.variable != "" {
		return resource.Resource{}, false
	}
	return t.resource, true
}

// String formats as "#name" or "namespace:path".
func (t TextureRef) String() string {
	if t.variable != "" {
		return "#" + t.variable
	}
	return t.resource.String()
}

// MarshalText implements encoding.TextMarshaler.
func (t TextureRef) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TextureRef) UnmarshalText(text []byte) error {
	parsed, err := ParseTextureRef(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
