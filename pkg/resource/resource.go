// Package resource defines namespaced resource identifiers and the provider
// boundary that maps them to raw bytes.
package resource

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultNamespace is used when an identifier string carries no namespace.
const DefaultNamespace = "minecraft"

var (
	// ErrMalformedIdentifier is returned when an identifier string cannot be parsed.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrNotFound is returned by providers that have no bytes for a resource.
	ErrNotFound = errors.New("resource not found")
)

// Resource is a (namespace, path) pair addressing an asset.
// Equality is plain struct equality: case-sensitive, no normalization.
type Resource struct {
	Namespace string
	Path      string
}

// New returns a resource in the given namespace.
func New(namespace, path string) Resource {
	return Resource{Namespace: namespace, Path: path}
}

// Parse parses "namespace:path" or a bare "path" (default namespace).
// Everything after the first colon is the path.
func Parse(s string) (Resource, error) {
	if s == "" {
		return Resource{}, fmt.Errorf("%w: empty string", ErrMalformedIdentifier)
	}

	ns, path, found := strings.Cut(s, ":")
	if !found {
		return Resource{Namespace: DefaultNamespace, Path: s}, nil
	}
	if ns == "" {
		return Resource{}, fmt.Errorf("%w: empty namespace in %q", ErrMalformedIdentifier, s)
	}
	if path == "" {
		return Resource{}, fmt.Errorf("%w: empty path in %q", ErrMalformedIdentifier, s)
	}
	return Resource{Namespace: ns, Path: path}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Resource {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Append returns a copy with suffix concatenated onto the path.
func (r Resource) Append(suffix string) Resource {
	return Resource{Namespace: r.Namespace, Path: r.Path + suffix}
}

// Prepend returns a copy with prefix concatenated in front of the path.
func (r Resource) Prepend(prefix string) Resource {
	return Resource{Namespace: r.Namespace, Path: prefix + r.Path}
}

// IsZero reports whether r is the zero identifier.
func (r Resource) IsZero() bool {
	return r.Namespace == "" && r.Path == ""
}

// String formats the identifier as "namespace:path".
func (r Resource) String() string {
	return r.Namespace + ":" + r.Path
}

// MarshalText implements encoding.TextMarshaler.
func (r Resource) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Resource) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Less orders identifiers by namespace, then path.
func Less(a, b Resource) bool {
	if a.Namespace != b.Namespace {
		return a.Namespace < b.Namespace
	}
	return a.Path < b.Path
}
