package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/brahimakil/balagh-admin-sub001/internal/store"
)

// ValidateRelations checks every relation field the collection declares.
// An empty or nil value is an optional, unset relation and passes; a
// non-empty value must identify an existing record in the target
// collection. Returns all failures as human-readable messages naming the
// relation label and the offending value.
//
// Validation is non-transactional: a target deleted between validation
// and persistence is an accepted race.
func (p *Pipeline) ValidateRelations(ctx context.Context, collection string, rec store.Record) (bool, []string, error) {
	def, ok := p.registry.Get(collection)
	if !ok {
		return true, nil, nil
	}

	var msgs []string
	for _, field := range def.Relations() {
		id := toText(rec[field.Name])
		if id == "" {
			continue
		}

		_, err := p.store.Get(ctx, field.Relation.Collection, id)
		if errors.Is(err, store.ErrNotFound) {
			msgs = append(msgs, fmt.Sprintf("%s %q not found in %s",
				field.Relation.Label, id, field.Relation.Collection))
			continue
		}
		if err != nil {
			return false, nil, fmt.Errorf("resolve %s relation: %w", field.Relation.Label, err)
		}
	}

	return len(msgs) == 0, msgs, nil
}
