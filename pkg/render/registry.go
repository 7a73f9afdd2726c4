package render

import (
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrRendererNotFound is returned when a renderer name is not registered.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Descriptor summarises a registered renderer.
type Descriptor struct {
	Name        string
	ContentType string
}

// Registry maps renderer names to renderers. Names are matched
// case-insensitively and kept sorted.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	names     []string
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds renderer under its Name.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	key := registryKey(renderer.Name())
	if key == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[key]; exists {
		return errors.Newf("render: renderer %q already registered", key)
	}
	r.renderers[key] = renderer
	idx, _ := slices.BinarySearch(r.names, key)
	r.names = slices.Insert(r.names, idx, key)
	return nil
}

// MustRegister is Register for init-time wiring; it panics on error.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Renderer, error) {
	key := registryKey(name)
	r.mu.RLock()
	renderer, ok := r.renderers[key]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrRendererNotFound, "%q", key)
	}
	return renderer, nil
}

// List returns the registered names in order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names)
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.renderers[registryKey(name)]
	return ok
}

// Describe lists name and content type of every renderer, ordered by name.
func (r *Registry) Describe() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, Descriptor{Name: name, ContentType: r.renderers[name].ContentType()})
	}
	return out
}
