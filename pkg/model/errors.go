package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/blockforge/pkg/resource"
)

var (
	// ErrResourceNotFound means the provider had no bytes for a model file.
	ErrResourceNotFound = resource.ErrNotFound

	// ErrMalformedIdentifier means an identifier or texture reference string failed to parse.
	ErrMalformedIdentifier = resource.ErrMalformedIdentifier

	// ErrMalformedModel means the model JSON has the wrong shape.
	ErrMalformedModel = errors.New("malformed model")

	// ErrCyclicInheritance means a model is (transitively) its own parent.
	ErrCyclicInheritance = errors.New("cyclic inheritance")
)

// ResolveError records which model failed to resolve.
// Failures are terminal for that model; resolving again only helps once the
// underlying resource has been fixed.
type ResolveError struct {
	ID  resource.Resource
	Err error
}

func (e *ResolveError) Error() string { return fmt.Sprintf("resolving model %s: %v", e.ID, e.Err) }
func (e *ResolveError) Unwrap() error { return e.Err }

// IsNotFound reports whether err (or any error in its chain) is a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}

// IsMalformed reports whether err stems from corrupt input rather than a missing resource.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedModel) || errors.Is(err, ErrMalformedIdentifier)
}

func resolveErr(id resource.Resource, err error) error { return &ResolveError{ID: id, Err: err} }
func resolveErrf(id resource.Resource, format string, a ...any) error {
	return resolveErr(id, fmt.Errorf(format, a...))
}
