package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brahimakil/balagh-admin-sub001/internal/store"
)

// ImportCollection runs the per-row import state machine over every row
// of one collection's sheet. Each row terminates as Imported, Skipped
// (duplicate) or Errored; errors never stop the remaining rows. An
// unknown collection short-circuits with a single row-0 error.
func (p *Pipeline) ImportCollection(ctx context.Context, collection string, rows []ImportRow) *ImportResult {
	result := &ImportResult{Collection: collection}

	if _, ok := p.registry.Get(collection); !ok {
		result.addError(0, "unknown collection %q", collection)
		result.finalize()
		return result
	}

	seen := make(dupCache)
	for i, row := range rows {
		lineNum := i + rowOffset
		p.importRow(ctx, collection, row, lineNum, seen, result)
	}

	result.finalize()
	slog.Info("collection import finished",
		"collection", collection,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	return result
}

// importRow processes one row. Panics from the store or coercion paths
// are captured as that row's error instead of aborting the batch.
func (p *Pipeline) importRow(ctx context.Context, collection string, row ImportRow, lineNum int, seen dupCache, result *ImportResult) {
	defer func() {
		if r := recover(); r != nil {
			result.addError(lineNum, "unexpected failure: %v", r)
		}
	}()

	rec := p.ParseRow(collection, row)

	// Duplicate check, memoized by natural key for this run.
	eq, hasKey := p.naturalKeyFilter(collection, rec)
	var key string
	if hasKey {
		key = p.cacheKey(collection, eq)
		if seen[key] {
			result.Skipped++
			return
		}
		dup, _, err := p.IsDuplicate(ctx, collection, rec)
		if err != nil {
			result.addError(lineNum, "%v", err)
			return
		}
		if dup {
			seen[key] = true
			result.Skipped++
			return
		}
	}

	valid, msgs, err := p.ValidateRelations(ctx, collection, rec)
	if err != nil {
		result.addError(lineNum, "%v", err)
		return
	}
	if !valid {
		result.addError(lineNum, "%s", strings.Join(msgs, "; "))
		return
	}

	id := p.newID()
	stamped := p.stampRecord(rec)

	if err := p.store.Put(ctx, collection, id, stamped); err != nil {
		result.addError(lineNum, "persist: %v", err)
		return
	}

	if hasKey {
		seen[key] = true
	}
	result.Imported++
}

// stampRecord adds provenance fields and converts every date-typed value
// (at any nesting depth) to the store's timestamp representation.
func (p *Pipeline) stampRecord(rec store.Record) store.Record {
	now := storeTimestamp(p.now())

	stamped := make(store.Record, len(rec)+4)
	for k, v := range rec {
		stamped[k] = convertDates(v)
	}
	stamped["createdAt"] = now
	stamped["updatedAt"] = now
	stamped["importedAt"] = now
	stamped["importedBy"] = ImportSource
	return stamped
}

// PurgeImported deletes every record in the collection that carries the
// import provenance marker, returning the number removed.
func (p *Pipeline) PurgeImported(ctx context.Context, collection string) (int64, error) {
	if _, ok := p.registry.Get(collection); !ok {
		return 0, fmt.Errorf("unknown collection %q", collection)
	}
	return p.store.DeleteWhere(ctx, collection, map[string]any{"importedBy": ImportSource})
}

// PurgeAllImported purges imported records from every collection, in
// reverse import order so referencing records go before their targets.
func (p *Pipeline) PurgeAllImported(ctx context.Context) (int64, error) {
	keys := p.registry.OrderedKeys()

	var total int64
	for i := len(keys) - 1; i >= 0; i-- {
		n, err := p.PurgeImported(ctx, keys[i])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// CountImported reports how many records in the collection carry the
// import provenance marker, without deleting anything.
func (p *Pipeline) CountImported(ctx context.Context, collection string) (int64, error) {
	if _, ok := p.registry.Get(collection); !ok {
		return 0, fmt.Errorf("unknown collection %q", collection)
	}
	recs, err := p.store.Find(ctx, collection, map[string]any{"importedBy": ImportSource})
	if err != nil {
		return 0, err
	}
	return int64(len(recs)), nil
}
