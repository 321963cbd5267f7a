// Package model resolves block models: it follows a model's parent chain,
// merges texture-variable tables and binds every face to a texture.
package model

import (
	"slices"

	"github.com/Faultbox/blockforge/pkg/math"
	"github.com/Faultbox/blockforge/pkg/resource"
)

// UV is a texture-space rectangle ((u0, v0), (u1, v1)) taken as-is from the file.
type UV [2][2]float32

// FaceTexture is the texture mapping of one element face.
type FaceTexture struct {
	UV      UV         `yaml:"uv"`
	Texture TextureRef `yaml:"texture"`

	// CullFace names the neighbour direction that hides this face, if any.
	CullFace string `yaml:"cullface,omitempty"`
	// TintIndex is -1 when the face is not tinted.
	TintIndex int `yaml:"tintindex"`
}

// Direction identifies one of the six faces of a cuboid.
type Direction int

const (
	Up Direction = iota
	Down
	North
	East
	South
	West
)

// Directions lists every face direction in file order.
var Directions = [6]Direction{Up, Down, North, East, South, West}

var directionNames = [6]string{"up", "down", "north", "east", "south", "west"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// ParseDirection maps a face name to its Direction.
func ParseDirection(name string) (Direction, bool) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return 0, false
}

// ElementFaces holds up to six faces; a nil entry is not rendered.
type ElementFaces [6]*FaceTexture

// Get returns the face for d, if present.
func (f ElementFaces) Get(d Direction) (FaceTexture, bool) {
	if f[d] == nil {
		return FaceTexture{}, false
	}
	return *f[d], true
}

// Count returns the number of present faces.
func (f ElementFaces) Count() int {
	n := 0
	for _, face := range f {
		if face != nil {
			n++
		}
	}
	return n
}

// MarshalYAML renders the present faces keyed by direction name.
func (f ElementFaces) MarshalYAML() (interface{}, error) {
	out := make(map[string]FaceTexture, len(f))
	for _, d := range Directions {
		if face, ok := f.Get(d); ok {
			out[d.String()] = face
		}
	}
	return out, nil
}

// Element is an axis-aligned cuboid in block space (0.0 - 1.0).
type Element struct {
	From  [3]float32   `yaml:"from"`
	To    [3]float32   `yaml:"to"`
	Faces ElementFaces `yaml:"faces"`
	Shade bool         `yaml:"shade"`
}

// BlockModel is a fully resolved model. It is owned by the Resolver's cache
// and must not be modified.
type BlockModel struct {
	ID     resource.Resource  `yaml:"id"`
	Parent *resource.Resource `yaml:"parent,omitempty"`

	Elements []Element `yaml:"elements"`

	// DisplayTransforms maps a view context (gui, firstperson_righthand, ...) to its transform.
	DisplayTransforms map[string]math.Mat4 `yaml:"display,omitempty"`

	// Textures is the merged texture table, exposed to child models.
	Textures map[string]TextureRef `yaml:"textures"`

	AmbientOcclusion bool `yaml:"ambientocclusion"`
}

// Texture looks up a texture variable in the merged table.
func (m *BlockModel) Texture(name string) (TextureRef, bool) {
	ref, ok := m.Textures[name]
	return ref, ok
}

// BindTexture follows a variable reference through the merged table until it
// reaches a concrete texture or a name the table does not bind. Inherited
// elements keep the references of the model that declared them, so callers
// bind face textures against the table of the model they render.
func (m *BlockModel) BindTexture(ref TextureRef) TextureRef {
	for hops := 0; hops <= len(m.Textures); hops++ {
		name, ok := ref.Variable()
		if !ok {
			return ref
		}
		next, found := m.Textures[name]
		if !found || next == ref {
			return ref
		}
		ref = next
	}
	return ref
}

// TextureRefs returns the concrete textures used by faces after binding,
// sorted and deduplicated.
func (m *BlockModel) TextureRefs() []resource.Resource {
	seen := make(map[resource.Resource]struct{})
	var out []resource.Resource
	m.eachFace(func(face *FaceTexture) {
		r, ok := m.BindTexture(face.Texture).Resource()
		if !ok {
			return
		}
		if _, dup := seen[r]; dup {
			return
		}
		seen[r] = struct{}{}
		out = append(out, r)
	})
	slices.SortFunc(out, func(a, b resource.Resource) int {
		switch {
		case resource.Less(a, b):
			return -1
		case resource.Less(b, a):
			return 1
		}
		return 0
	})
	return out
}

// UnresolvedVariables returns texture variables that faces still reference
// after binding because nothing in the inheritance chain bound them.
func (m *BlockModel) UnresolvedVariables() []string {
	seen := make(map[string]struct{})
	var out []string
	m.eachFace(func(face *FaceTexture) {
		name, ok := m.BindTexture(face.Texture).Variable()
		if !ok {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	})
	slices.Sort(out)
	return out
}

func (m *BlockModel) eachFace(fn func(*FaceTexture)) {
	for i := range m.Elements {
		for _, face := range m.Elements[i].Faces {
			if face != nil {
				fn(face)
			}
		}
	}
}
