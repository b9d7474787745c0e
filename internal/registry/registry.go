// Package registry is the catalog of game variants. Variants register a
// descriptor factory in init(), so the engine can start sessions by ID
// without knowing which games exist.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade-engine/internal/engine"
)

// Factory builds a variant descriptor. configPath is an optional YAML
// override; empty means the default search order.
type Factory func(configPath string) (engine.Descriptor, error)

// Info contains metadata about a registered variant.
type Info struct {
	ID       string
	Title    string
	Summary  string
	Stake    int
	MaxLevel int
}

// Registry maps variant IDs to factories and caches built descriptors.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	built     map[string]engine.Descriptor
	paths     map[string]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		built:     make(map[string]engine.Descriptor),
		paths:     make(map[string]string),
	}
}

// Register adds a variant factory.
// Panics if a variant with the same ID is already registered.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}
	r.factories[id] = f
}

// Configure sets a YAML override for a variant and rebuilds its descriptor.
func (r *Registry) Configure(id, configPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.factories[id]
	if !ok {
		return fmt.Errorf("registry: unknown variant %q", id)
	}
	d, err := build(id, f, configPath)
	if err != nil {
		return err
	}
	r.paths[id] = configPath
	r.built[id] = d
	return nil
}

// Descriptor returns the descriptor for id, building it on first use.
func (r *Registry) Descriptor(id string) (engine.Descriptor, error) {
	r.mu.RLock()
	d, ok := r.built[id]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.built[id]; ok {
		return d, nil
	}
	f, ok := r.factories[id]
	if !ok {
		return engine.Descriptor{}, fmt.Errorf("registry: unknown variant %q", id)
	}
	d, err := build(id, f, r.paths[id])
	if err != nil {
		return engine.Descriptor{}, err
	}
	r.built[id] = d
	return d, nil
}

// Lookup implements engine.Catalog.
func (r *Registry) Lookup(id string) (engine.Descriptor, bool) {
	d, err := r.Descriptor(id)
	return d, err == nil
}

// List returns information about all registered variants, sorted by ID.
// Variants whose configuration fails to load are skipped.
func (r *Registry) List() []Info {
	r.mu.RLock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)

	result := make([]Info, 0, len(ids))
	for _, id := range ids {
		d, err := r.Descriptor(id)
		if err != nil {
			continue
		}
		result = append(result, Info{
			ID:       d.ID,
			Title:    d.Title,
			Summary:  d.Summary,
			Stake:    d.Stake,
			MaxLevel: d.MaxLevel,
		})
	}
	return result
}

// Exists checks if a variant with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}

func build(id string, f Factory, configPath string) (engine.Descriptor, error) {
	d, err := f(configPath)
	if err != nil {
		return engine.Descriptor{}, fmt.Errorf("registry: load %q: %w", id, err)
	}
	if d.ID != id {
		return engine.Descriptor{}, fmt.Errorf("registry: factory for %q built %q", id, d.ID)
	}
	if err := d.Validate(); err != nil {
		return engine.Descriptor{}, fmt.Errorf("registry: %w", err)
	}
	return d, nil
}

// Default is the registry variants register into from init().
var Default = New()

// Register adds a variant factory to the default registry.
func Register(id string, f Factory) { Default.Register(id, f) }

// Configure sets a YAML override in the default registry.
func Configure(id, configPath string) error { return Default.Configure(id, configPath) }

// List returns the variants of the default registry.
func List() []Info { return Default.List() }

// Exists checks the default registry.
func Exists(id string) bool { return Default.Exists(id) }
