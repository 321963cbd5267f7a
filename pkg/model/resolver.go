package model

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/pkg/math"
	"github.com/Faultbox/blockforge/pkg/resource"
)

// builtinPrefix marks parents that are hardcoded in the game rather than
// shipped as files. They resolve to empty root models.
const builtinPrefix = "builtin/"

// Resolver resolves block models and memoizes every model it has built.
// A Resolver is safe for concurrent use; each identifier is fetched and
// parsed at most once for the lifetime of the Resolver.
type Resolver struct {
	provider resource.Provider
	log      *zap.Logger

	mu     sync.RWMutex
	models map[resource.Resource]*BlockModel
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a resolver reading model files from provider.
func NewResolver(provider resource.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		provider: provider,
		log:      zap.NewNop(),
		models:   make(map[resource.Resource]*BlockModel),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ModelPath returns the resource holding the model file for id.
func ModelPath(id resource.Resource) resource.Resource {
	return id.Prepend("models/").Append(".json")
}

// Resolve returns the fully resolved model for id, resolving and caching its
// parent chain first. A failed resolution leaves no cache entry behind.
//
// A cache miss holds the write lock for the whole chain, provider reads
// included. Concurrent Resolve and Cached calls wait for it, even for models
// already cached; in exchange no file is ever fetched twice.
func (r *Resolver) Resolve(id resource.Resource) (*BlockModel, error) {
	if m, ok := r.Cached(id); ok {
		return m, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(id, nil)
}

// ResolveString parses s as an identifier and resolves it.
func (r *Resolver) ResolveString(s string) (*BlockModel, error) {
	id, err := resource.Parse(s)
	if err != nil {
		return nil, err
	}
	return r.Resolve(id)
}

// Cached returns a previously resolved model without touching the provider.
func (r *Resolver) Cached(id resource.Resource) (*BlockModel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[id]
	return m, ok
}

// Len returns the number of cached models.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

// resolve must be called with r.mu held for writing. chain holds the
// identifiers currently being resolved, outermost first.
func (r *Resolver) resolve(id resource.Resource, chain []resource.Resource) (*BlockModel, error) {
	if m, ok := r.models[id]; ok {
		return m, nil
	}

	for _, inProgress := range chain {
		if inProgress == id {
			return nil, resolveErrf(id, "%w: %s", ErrCyclicInheritance, formatChain(append(chain, id)))
		}
	}
	chain = append(chain, id)

	if strings.HasPrefix(id.Path, builtinPrefix) {
		m := &BlockModel{
			ID:                id,
			Elements:          []Element{},
			DisplayTransforms: map[string]math.Mat4{},
			Textures:          map[string]TextureRef{},
			AmbientOcclusion:  true,
		}
		r.models[id] = m
		r.log.Debug("builtin model", zap.Stringer("id", id))
		return m, nil
	}

	path := ModelPath(id)
	data, err := r.provider.Get(path)
	if err != nil {
		return nil, resolveErrf(id, "%w: %s: %w", ErrResourceNotFound, path, err)
	}

	raw, err := decodeModel(data)
	if err != nil {
		return nil, resolveErr(id, err)
	}

	var parent *BlockModel
	if raw.Parent != nil {
		parentID, err := resource.Parse(*raw.Parent)
		if err != nil {
			return nil, resolveErrf(id, "parent: %w", err)
		}
		parent, err = r.resolve(parentID, chain)
		if err != nil {
			return nil, resolveErrf(id, "parent %s: %w", parentID, err)
		}
	}

	textures, err := parseTextureTable(raw.Textures)
	if err != nil {
		return nil, resolveErr(id, err)
	}
	if parent != nil {
		textures = mergeTextures(textures, parent.Textures)
	}

	var elements []Element
	switch {
	case present(raw.Elements):
		elements, err = r.parseElements(raw.Elements, textures)
		if err != nil {
			return nil, resolveErr(id, err)
		}
	case parent != nil:
		elements = append([]Element(nil), parent.Elements...)
	default:
		elements = []Element{}
	}

	var display map[string]math.Mat4
	switch {
	case present(raw.Display):
		display = r.parseDisplay(raw.Display)
	case parent != nil:
		display = make(map[string]math.Mat4, len(parent.DisplayTransforms))
		for k, v := range parent.DisplayTransforms {
			display[k] = v
		}
	default:
		display = map[string]math.Mat4{}
	}

	ao := true
	switch {
	case raw.AmbientOcclusion != nil:
		ao = *raw.AmbientOcclusion
	case parent != nil:
		ao = parent.AmbientOcclusion
	}

	m := &BlockModel{
		ID:                id,
		Elements:          elements,
		DisplayTransforms: display,
		Textures:          textures,
		AmbientOcclusion:  ao,
	}
	if parent != nil {
		parentID := parent.ID
		m.Parent = &parentID
	}

	r.models[id] = m
	r.log.Debug("resolved model",
		zap.Stringer("id", id),
		zap.Int("elements", len(elements)),
		zap.Int("textures", len(textures)),
		zap.Int("depth", len(chain)),
	)
	return m, nil
}

func formatChain(chain []resource.Resource) string {
	parts := make([]string, len(chain))
	for i, id := range chain {
		parts[i] = id.String()
	}
	return strings.Join(parts, " -> ")
}
