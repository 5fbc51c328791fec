package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// Surreal stores each collection as a SurrealDB table. All statements go
// through Query with bound variables; record ids are addressed with
// type::thing so generated ids never need SurrealQL escaping.
//
// The underlying client is websocket-based and not safe for concurrent
// callers; the pipeline issues requests sequentially, which matches.
type Surreal struct {
	db *surrealdb.DB
}

// SurrealConfig holds connection settings for a SurrealDB instance.
type SurrealConfig struct {
	URL       string // ws://host:port/rpc
	Namespace string
	Database  string
	User      string
	Pass      string
}

// NewSurreal connects, signs in and selects the namespace/database.
func NewSurreal(cfg SurrealConfig) (*Surreal, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect surrealdb: %w", err)
	}

	if _, err := db.Signin(map[string]any{"user": cfg.User, "pass": cfg.Pass}); err != nil {
		db.Close()
		return nil, fmt.Errorf("surrealdb signin: %w", err)
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		db.Close()
		return nil, fmt.Errorf("surrealdb use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}

	return &Surreal{db: db}, nil
}

// Close shuts down the underlying websocket connection.
func (s *Surreal) Close() {
	s.db.Close()
}

func (s *Surreal) Put(_ context.Context, collection, id string, rec Record) error {
	data := rec.Clone()
	delete(data, "id") // surreal manages the id as part of the thing

	_, err := s.db.Query(
		`UPDATE type::thing($tb, $id) CONTENT $data`,
		map[string]any{"tb": collection, "id": id, "data": map[string]any(data)},
	)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Surreal) Get(_ context.Context, collection, id string) (Record, error) {
	res, err := s.db.Query(
		`SELECT * FROM type::thing($tb, $id)`,
		map[string]any{"tb": collection, "id": id},
	)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	recs := decodeResults(res, collection)
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs[0], nil
}

func (s *Surreal) Find(_ context.Context, collection string, eq map[string]any) ([]Record, error) {
	if len(eq) == 0 {
		return nil, nil
	}

	where, vars := buildWhere(eq)
	vars["tb"] = collection

	res, err := s.db.Query(
		`SELECT * FROM type::table($tb) WHERE `+where,
		vars,
	)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	return decodeResults(res, collection), nil
}

func (s *Surreal) List(_ context.Context, collection string) ([]Record, error) {
	res, err := s.db.Query(
		`SELECT * FROM type::table($tb)`,
		map[string]any{"tb": collection},
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return decodeResults(res, collection), nil
}

func (s *Surreal) Delete(_ context.Context, collection, id string) error {
	_, err := s.db.Query(
		`DELETE type::thing($tb, $id)`,
		map[string]any{"tb": collection, "id": id},
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Surreal) DeleteWhere(_ context.Context, collection string, eq map[string]any) (int64, error) {
	if len(eq) == 0 {
		return 0, nil
	}

	where, vars := buildWhere(eq)
	vars["tb"] = collection

	// RETURN BEFORE yields the deleted records so we can count them.
	res, err := s.db.Query(
		`DELETE type::table($tb) WHERE `+where+` RETURN BEFORE`,
		vars,
	)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return int64(len(decodeResults(res, collection))), nil
}

// buildWhere renders an equality filter as "field = $p0 AND ..." with
// bound variables, sorted by field name for deterministic statements.
func buildWhere(eq map[string]any) (string, map[string]any) {
	fields := make([]string, 0, len(eq))
	for f := range eq {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	clauses := make([]string, len(fields))
	vars := make(map[string]any, len(fields)+1)
	for i, f := range fields {
		p := fmt.Sprintf("p%d", i)
		clauses[i] = fmt.Sprintf("%s = $%s", f, p)
		vars[p] = eq[f]
	}
	return strings.Join(clauses, " AND "), vars
}

// decodeResults flattens the client's raw query response into records.
// The response is a list of per-statement results; each result is either
// a single object or a list of objects.
func decodeResults(res any, collection string) []Record {
	var out []Record

	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case []any:
			for _, item := range t {
				walk(item)
			}
		case map[string]any:
			if inner, ok := t["result"]; ok {
				walk(inner)
				return
			}
			out = append(out, normalizeID(Record(t), collection))
		}
	}
	walk(res)

	return out
}

// normalizeID rewrites surreal's "collection:id" thing ids back to the
// bare id the Store contract promises.
func normalizeID(rec Record, collection string) Record {
	if id, ok := rec["id"].(string); ok {
		rec["id"] = strings.TrimPrefix(id, collection+":")
		rec["id"] = strings.Trim(rec["id"].(string), "⟨⟩")
	}
	return rec
}
