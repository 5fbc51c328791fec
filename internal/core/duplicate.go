package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brahimakil/balagh-admin-sub001/internal/store"
)

// IsDuplicate reports whether a record matching rec's natural key already
// exists in the collection, returning the existing record when it does.
// Unknown collections are never duplicates: the check fails open so an
// import proceeds, at the acceptable risk of data duplication.
func (p *Pipeline) IsDuplicate(ctx context.Context, collection string, rec store.Record) (bool, store.Record, error) {
	eq, ok := p.naturalKeyFilter(collection, rec)
	if !ok {
		return false, nil, nil
	}

	existing, err := p.store.Find(ctx, collection, eq)
	if err != nil {
		return false, nil, fmt.Errorf("duplicate check in %s: %w", collection, err)
	}
	if len(existing) == 0 {
		return false, nil, nil
	}
	return true, existing[0], nil
}

// naturalKeyFilter builds the store equality filter for rec's natural
// key, using the persisted representation of each value so the query
// matches what earlier imports wrote. Returns false when the collection
// is unknown or declares no natural key.
func (p *Pipeline) naturalKeyFilter(collection string, rec store.Record) (map[string]any, bool) {
	def, ok := p.registry.Get(collection)
	if !ok || len(def.NaturalKey) == 0 {
		return nil, false
	}

	eq := make(map[string]any, len(def.NaturalKey))
	for _, field := range def.NaturalKey {
		v := rec[field]
		if t, isDate := v.(time.Time); isDate {
			v = storeTimestamp(t)
		}
		eq[field] = v
	}
	return eq, true
}

// dupCache memoizes natural-key lookups within a single import run, so
// bulk re-imports with recurring keys do not re-query the store per row.
type dupCache map[string]bool

// cacheKey flattens a natural-key filter into a map key.
func (p *Pipeline) cacheKey(collection string, eq map[string]any) string {
	def, _ := p.registry.Get(collection)
	parts := make([]string, 0, len(def.NaturalKey)+1)
	parts = append(parts, collection)
	for _, field := range def.NaturalKey {
		parts = append(parts, stringifyCell(eq[field]))
	}
	return strings.Join(parts, "\x00")
}
