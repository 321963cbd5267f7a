package model

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/pkg/math"
)

// rawModel is the top-level model object. Fields stay raw so that each one
// can be validated on its own and absence can be told apart from emptiness.
type rawModel struct {
	Parent           *string         `json:"parent"`
	Textures         json.RawMessage `json:"textures"`
	Elements         json.RawMessage `json:"elements"`
	Display          json.RawMessage `json:"display"`
	AmbientOcclusion *bool           `json:"ambientocclusion"`
}

type rawElement struct {
	From  []*float32                 `json:"from"`
	To    []*float32                 `json:"to"`
	Faces map[string]json.RawMessage `json:"faces"`
	Shade *bool                      `json:"shade"`
}

type rawFace struct {
	UV        []*float32 `json:"uv"`
	Texture   *string    `json:"texture"`
	CullFace  string     `json:"cullface"`
	TintIndex *int       `json:"tintindex"`
}

type rawTransform struct {
	Rotation    []float32 `json:"rotation"`
	Translation []float32 `json:"translation"`
	Scale       []float32 `json:"scale"`
}

// decodeModel decodes the top-level object. Anything but a JSON object is malformed.
func decodeModel(data []byte) (*rawModel, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedModel)
	}

	var raw rawModel
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
	}
	return &raw, nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// parseTextureTable reads the "textures" object. Absent means empty.
func parseTextureTable(raw json.RawMessage) (map[string]TextureRef, error) {
	table := make(map[string]TextureRef)
	if !present(raw) {
		return table, nil
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: textures: %v", ErrMalformedModel, err)
	}
	for key, value := range entries {
		ref, err := ParseTextureRef(value)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", key, err)
		}
		table[key] = ref
	}
	return table, nil
}

// mergeTextures merges the parent's already-merged table into the local one.
// A parent variable is bound by the local entry of the same name; an unbound
// parent variable and every concrete parent entry pass through unchanged and
// replace any local entry under the same key. Local-only keys are kept.
func mergeTextures(local, parent map[string]TextureRef) map[string]TextureRef {
	merged := make(map[string]TextureRef, len(local)+len(parent))
	for key, ref := range local {
		merged[key] = ref
	}
	for key, ref := range parent {
		if name, ok := ref.Variable(); ok {
			if bound, found := local[name]; found {
				merged[key] = bound
				continue
			}
		}
		merged[key] = ref
	}
	return merged
}

// numbers dereferences a JSON number array; a null entry fails the whole array.
func numbers(values []*float32) ([]float32, bool) {
	out := make([]float32, len(values))
	for i, v := range values {
		if v == nil {
			return nil, false
		}
		out[i] = *v
	}
	return out, true
}

func triplet(values []float32) ([3]float32, bool) {
	if len(values) < 3 {
		return [3]float32{}, false
	}
	return [3]float32{values[0], values[1], values[2]}, true
}

func corner(values []*float32) ([3]float32, bool) {
	v, ok := numbers(values)
	if !ok {
		return [3]float32{}, false
	}
	return triplet(v)
}

// parseElements parses the "elements" array. Missing corners or faces are
// fatal for the model; a bad face only drops that face.
func (r *Resolver) parseElements(raw json.RawMessage, textures map[string]TextureRef) ([]Element, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: elements: %v", ErrMalformedModel, err)
	}

	elements := make([]Element, 0, len(entries))
	for i, entry := range entries {
		var re rawElement
		if err := json.Unmarshal(entry, &re); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformedModel, i, err)
		}

		from, ok := corner(re.From)
		if !ok {
			return nil, fmt.Errorf("%w: element %d: missing, short or null \"from\"", ErrMalformedModel, i)
		}
		to, ok := corner(re.To)
		if !ok {
			return nil, fmt.Errorf("%w: element %d: missing, short or null \"to\"", ErrMalformedModel, i)
		}
		if re.Faces == nil {
			return nil, fmt.Errorf("%w: element %d: missing \"faces\"", ErrMalformedModel, i)
		}

		el := Element{
			From:  math.Vec3FromArray(from).Scale(1.0 / 16).Array(),
			To:    math.Vec3FromArray(to).Scale(1.0 / 16).Array(),
			Shade: re.Shade == nil || *re.Shade,
		}
		for _, d := range Directions {
			faceRaw, ok := re.Faces[d.String()]
			if !ok {
				continue
			}
			el.Faces[d] = r.parseFace(faceRaw, textures, i, d)
		}
		elements = append(elements, el)
	}
	return elements, nil
}

// parseFace returns nil when the face has to be dropped.
func (r *Resolver) parseFace(raw json.RawMessage, textures map[string]TextureRef, element int, d Direction) *FaceTexture {
	drop := func(reason string) *FaceTexture {
		r.log.Debug("dropping face",
			zap.Int("element", element),
			zap.Stringer("face", d),
			zap.String("reason", reason),
		)
		return nil
	}

	var rf rawFace
	if err := json.Unmarshal(raw, &rf); err != nil {
		return drop(err.Error())
	}
	uv, ok := numbers(rf.UV)
	if !ok {
		return drop("null uv entry")
	}
	if len(uv) < 4 {
		return drop("missing uv")
	}
	if rf.Texture == nil {
		return drop("missing texture")
	}

	tex, err := ParseTextureRef(*rf.Texture)
	if err != nil {
		return drop(err.Error())
	}
	if name, ok := tex.Variable(); ok {
		bound, found := textures[name]
		if !found {
			return drop("texture variable #" + name + " has no binding")
		}
		tex = bound
	}

	face := &FaceTexture{
		UV:        UV{{uv[0], uv[1]}, {uv[2], uv[3]}},
		Texture:   tex,
		CullFace:  rf.CullFace,
		TintIndex: -1,
	}
	if rf.TintIndex != nil {
		face.TintIndex = *rf.TintIndex
	}
	return face
}

// parseDisplay reads the "display" object into per-context transforms.
// Rotation is in degrees, translation in 1/16 block units.
// Malformed contexts are skipped.
func (r *Resolver) parseDisplay(raw json.RawMessage) map[string]math.Mat4 {
	var contexts map[string]json.RawMessage
	if err := json.Unmarshal(raw, &contexts); err != nil {
		r.log.Warn("ignoring malformed display object", zap.Error(err))
		return map[string]math.Mat4{}
	}

	out := make(map[string]math.Mat4, len(contexts))
	for name, ctxRaw := range contexts {
		var rt rawTransform
		if err := json.Unmarshal(ctxRaw, &rt); err != nil {
			r.log.Warn("ignoring malformed display context", zap.String("context", name), zap.Error(err))
			continue
		}

		rotation, okR := optionalTriplet(rt.Rotation, [3]float32{0, 0, 0})
		translation, okT := optionalTriplet(rt.Translation, [3]float32{0, 0, 0})
		scale, okS := optionalTriplet(rt.Scale, [3]float32{1, 1, 1})
		if !okR || !okT || !okS {
			r.log.Warn("ignoring display context with short vector", zap.String("context", name))
			continue
		}

		out[name] = math.TRS(
			math.Vec3FromArray(translation).Scale(1.0/16),
			math.Vec3FromArray(rotation),
			math.Vec3FromArray(scale),
		)
	}
	return out
}

func optionalTriplet(values []float32, def [3]float32) ([3]float32, bool) {
	if values == nil {
		return def, true
	}
	return triplet(values)
}
