// Package store defines the document-store contract the import/export
// pipeline runs against, plus its drivers. Collections are schemaless
// bags of JSON-shaped records identified by a caller-supplied string id.
//
// Three drivers exist:
//   - Memory: in-process maps, used by tests and local development
//   - Postgres: documents as jsonb rows via pgx
//   - Surreal: a SurrealDB database via surrealdb.go
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no record exists under the id.
var ErrNotFound = errors.New("record not found")

// Record is one document. The "id" field is always present on records
// returned by a Store.
type Record map[string]any

// ID returns the record's id field, or "" if unset.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Store is the narrow CRUD contract over a document database.
// Implementations must treat Put as create-or-overwrite.
type Store interface {
	// Put writes the record under (collection, id), replacing any
	// existing record.
	Put(ctx context.Context, collection, id string, rec Record) error

	// Get returns the record under (collection, id), or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Record, error)

	// Find returns every record whose fields equal all pairs in eq.
	// An empty eq matches nothing.
	Find(ctx context.Context, collection string, eq map[string]any) ([]Record, error)

	// List returns every record in the collection.
	List(ctx context.Context, collection string) ([]Record, error)

	// Delete removes the record under (collection, id). Removing a
	// missing record is not an error.
	Delete(ctx context.Context, collection, id string) error

	// DeleteWhere removes every record matching eq and returns the
	// number removed. An empty eq removes nothing.
	DeleteWhere(ctx context.Context, collection string, eq map[string]any) (int64, error)
}
