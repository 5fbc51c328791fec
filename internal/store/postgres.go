package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores documents as jsonb rows in a single table:
//
//	CREATE TABLE documents (
//	    collection text NOT NULL,
//	    id         text NOT NULL,
//	    doc        jsonb NOT NULL,
//	    PRIMARY KEY (collection, id)
//	)
//
// Find uses jsonb containment so equality matching works for strings,
// numbers, booleans and nulls alike.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the documents table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection text NOT NULL,
			id         text NOT NULL,
			doc        jsonb NOT NULL,
			PRIMARY KEY (collection, id)
		)`)
	if err != nil {
		return fmt.Errorf("ensure documents table: %w", err)
	}
	return nil
}

func (p *Postgres) Put(ctx context.Context, collection, id string, rec Record) error {
	doc, err := marshalDoc(rec, id)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc`,
		collection, id, doc)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, collection, id string) (Record, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return unmarshalDoc(doc)
}

func (p *Postgres) Find(ctx context.Context, collection string, eq map[string]any) ([]Record, error) {
	if len(eq) == 0 {
		return nil, nil
	}

	filter, err := json.Marshal(eq)
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}

	rows, err := p.pool.Query(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND doc @> $2 ORDER BY id`,
		collection, filter)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	defer rows.Close()

	return scanDocs(rows)
}

func (p *Postgres) List(ctx context.Context, collection string) ([]Record, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT doc FROM documents WHERE collection = $1 ORDER BY id`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	return scanDocs(rows)
}

func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (p *Postgres) DeleteWhere(ctx context.Context, collection string, eq map[string]any) (int64, error) {
	if len(eq) == 0 {
		return 0, nil
	}

	filter, err := json.Marshal(eq)
	if err != nil {
		return 0, fmt.Errorf("marshal filter: %w", err)
	}

	tag, err := p.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND doc @> $2`,
		collection, filter)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return tag.RowsAffected(), nil
}

func marshalDoc(rec Record, id string) ([]byte, error) {
	stored := rec.Clone()
	stored["id"] = id
	doc, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return doc, nil
}

func unmarshalDoc(doc []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}

func scanDocs(rows pgx.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		rec, err := unmarshalDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
