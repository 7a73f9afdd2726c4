package orchestrator

import (
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

// ErrAdapterNotFound is returned when a format name is not registered.
var ErrAdapterNotFound = errors.New("orchestrator: adapter not found")

// FormatAdapter aliases schema.FormatAdapter.
type FormatAdapter = schema.FormatAdapter

// AdapterRegistry maps document format names to adapters. Names are matched
// case-insensitively; detection runs in name order.
type AdapterRegistry struct {
	mu       sync.RWMutex
	adapters map[string]schema.FormatAdapter
	names    []string
}

func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{adapters: make(map[string]schema.FormatAdapter)}
}

func adapterKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds adapter under its Name.
func (r *AdapterRegistry) Register(adapter schema.FormatAdapter) error {
	if adapter == nil {
		return errors.New("orchestrator: adapter is required")
	}
	key := adapterKey(adapter.Name())
	if key == "" {
		return errors.New("orchestrator: adapter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[key]; exists {
		return errors.Newf("orchestrator: adapter %q already registered", key)
	}
	r.adapters[key] = adapter
	idx, _ := slices.BinarySearch(r.names, key)
	r.names = slices.Insert(r.names, idx, key)
	return nil
}

// MustRegister is Register for init-time wiring; it panics on error.
func (r *AdapterRegistry) MustRegister(adapter schema.FormatAdapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

func (r *AdapterRegistry) Get(name string) (schema.FormatAdapter, error) {
	key := adapterKey(name)
	if key == "" {
		return nil, errors.New("orchestrator: adapter name is required")
	}
	r.mu.RLock()
	adapter, ok := r.adapters[key]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrAdapterNotFound, "%q", key)
	}
	return adapter, nil
}

// List returns the registered format names in order.
func (r *AdapterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names)
}

func (r *AdapterRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.adapters[adapterKey(name)]
	return ok
}

// Detect returns every adapter that recognises the payload.
func (r *AdapterRegistry) Detect(src schema.Source, raw []byte) []schema.FormatAdapter {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []schema.FormatAdapter
	for _, name := range r.names {
		if adapter := r.adapters[name]; adapter.Detect(src, raw) {
			matches = append(matches, adapter)
		}
	}
	return matches
}
