package texture

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/pkg/model"
	"github.com/Faultbox/blockforge/pkg/resource"
)

// ErrUnresolvedTexture is returned when a model still references texture
// variables that nothing in its inheritance chain bound.
var ErrUnresolvedTexture = errors.New("unresolved texture variable")

// ErrTooLarge is returned for textures exceeding the set's size limit.
var ErrTooLarge = errors.New("texture too large")

// Path returns the resource holding the image for a texture identifier.
func Path(r resource.Resource) resource.Resource {
	return r.Prepend("textures/").Append(".png")
}

// Set loads, decodes and uploads textures on demand, once per identifier.
// Uploads are serialized; the uploader never sees concurrent calls from a Set.
type Set struct {
	provider resource.Provider
	uploader Uploader
	log      *zap.Logger
	maxSize  int

	mu       sync.Mutex
	textures map[resource.Resource]Handle
}

// SetOption configures a Set.
type SetOption func(*Set)

// WithMaxSize rejects textures whose width or height exceeds n pixels.
func WithMaxSize(n int) SetOption {
	return func(s *Set) { s.maxSize = n }
}

// NewSet creates a texture set reading image files from provider.
func NewSet(provider resource.Provider, uploader Uploader, log *zap.Logger, opts ...SetOption) *Set {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Set{
		provider: provider,
		uploader: uploader,
		log:      log,
		textures: make(map[resource.Resource]Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the handle for a texture, uploading it on first use.
// Failures are not cached.
func (s *Set) Load(r resource.Resource) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(r)
}

func (s *Set) load(r resource.Resource) (Handle, error) {
	if h, ok := s.textures[r]; ok {
		return h, nil
	}

	path := Path(r)
	data, err := s.provider.Get(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", r, err)
	}

	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", r, err)
	}

	b := img.Bounds()
	if s.maxSize > 0 && (b.Dx() > s.maxSize || b.Dy() > s.maxSize) {
		return nil, fmt.Errorf("texture %s: %w: %dx%d exceeds %d", r, ErrTooLarge, b.Dx(), b.Dy(), s.maxSize)
	}
	h, err := s.uploader.Upload(r.String(), img.Pix, uint32(b.Dx()), uint32(b.Dy()), FormatRGBA8)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", r, err)
	}

	s.textures[r] = h
	s.log.Debug("uploaded texture",
		zap.Stringer("id", r),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
	)
	return h, nil
}

// LoadModel uploads every concrete texture used by a resolved model. A model
// whose faces still reference unbound texture variables is rejected.
func (s *Set) LoadModel(m *model.BlockModel) (map[resource.Resource]Handle, error) {
	if vars := m.UnresolvedVariables(); len(vars) > 0 {
		return nil, fmt.Errorf("model %s: %w: #%s", m.ID, ErrUnresolvedTexture, strings.Join(vars, ", #"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	refs := m.TextureRefs()
	out := make(map[resource.Resource]Handle, len(refs))
	for _, r := range refs {
		h, err := s.load(r)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", m.ID, err)
		}
		out[r] = h
	}
	return out, nil
}

// Len returns the number of uploaded textures.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.textures)
}

// Release releases every uploaded texture and empties the set.
func (s *Set) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.textures {
		h.Release()
	}
	s.textures = make(map[resource.Resource]Handle)
}
