package schema

import (
	"fmt"
	"sync"
)

// Registry holds collection definitions in registration order. The
// pipeline receives a *Registry at construction so tests can substitute
// a smaller one; production code uses Default.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]CollectionDefinition
	order []string
}

// Default is the registry holding the site's content collections,
// populated by init in collections.go.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]CollectionDefinition)}
}

// Register adds a collection definition and appends it to the import
// order. Registration order IS the import dependency order: collections
// with no relations first, referencing collections later.
// Panics if the key is already registered.
func (r *Registry) Register(def CollectionDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Key]; exists {
		panic(fmt.Sprintf("collection already registered: %s", def.Key))
	}

	r.defs[def.Key] = def
	r.order = append(r.order, def.Key)
}

// Get returns a collection definition by key.
// Returns false if not found.
func (r *Registry) Get(key string) (CollectionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[key]
	return def, ok
}

// BySheetName returns the collection whose sheet name matches.
func (r *Registry) BySheetName(sheet string) (CollectionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.order {
		if r.defs[key].SheetName == sheet {
			return r.defs[key], true
		}
	}
	return CollectionDefinition{}, false
}

// Ordered returns all definitions in import dependency order.
func (r *Registry) Ordered() []CollectionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]CollectionDefinition, 0, len(r.order))
	for _, key := range r.order {
		result = append(result, r.defs[key])
	}
	return result
}

// OrderedKeys returns all collection keys in import dependency order.
func (r *Registry) OrderedKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Count returns the number of registered collections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Validate checks registry invariants: every relation target must itself
// be a registered collection, every natural-key member must be a declared
// field, and relation targets must appear earlier in the import order.
// Called once after all collections are registered; panics on violation.
func (r *Registry) Validate() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	position := make(map[string]int, len(r.order))
	for i, key := range r.order {
		position[key] = i
	}

	for _, key := range r.order {
		def := r.defs[key]

		for _, nk := range def.NaturalKey {
			if _, ok := def.Field(nk); !ok {
				panic(fmt.Sprintf("collection %s: natural key field %q not declared", key, nk))
			}
		}

		for _, f := range def.Fields {
			if f.Relation == nil {
				continue
			}
			target, ok := r.defs[f.Relation.Collection]
			if !ok {
				panic(fmt.Sprintf("collection %s: field %s references unknown collection %q",
					key, f.Name, f.Relation.Collection))
			}
			if position[target.Key] >= position[key] {
				panic(fmt.Sprintf("collection %s: field %s references %q which imports later",
					key, f.Name, target.Key))
			}
		}
	}
}
