package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brahimakil/balagh-admin-sub001/internal/schema"
	"github.com/brahimakil/balagh-admin-sub001/internal/store"
)

// Pipeline drives imports and exports against a document store and a
// collection registry. Construct one with New; both dependencies are
// injected so tests run against an in-memory store and a cut-down
// registry.
type Pipeline struct {
	store    store.Store
	registry *schema.Registry

	// now and newID are swappable for deterministic tests.
	now   func() time.Time
	newID func() string
}

// New creates a pipeline over the given store and registry.
func New(st store.Store, reg *schema.Registry) *Pipeline {
	return &Pipeline{
		store:    st,
		registry: reg,
		now:      time.Now,
		newID:    newImportID,
	}
}

// Registry returns the collection registry the pipeline runs against.
func (p *Pipeline) Registry() *schema.Registry {
	return p.registry
}

// Store returns the underlying document store.
func (p *Pipeline) Store() store.Store {
	return p.store
}

// newImportID generates the id for a record created by import: a time
// component for rough ordering plus a random suffix. Collisions at
// import volumes (hundreds of rows) are negligible.
func newImportID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return "imp-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + suffix
}
