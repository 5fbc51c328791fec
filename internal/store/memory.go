package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Store. Safe for concurrent use. List and Find
// return records sorted by id so tests see deterministic order.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Record // collection -> id -> record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]Record)}
}

func (m *Memory) Put(_ context.Context, collection, id string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.data[collection]
	if col == nil {
		col = make(map[string]Record)
		m.data[collection] = col
	}

	stored := rec.Clone()
	stored["id"] = id
	col[id] = stored
	return nil
}

func (m *Memory) Get(_ context.Context, collection, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (m *Memory) Find(_ context.Context, collection string, eq map[string]any) ([]Record, error) {
	if len(eq) == 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for _, rec := range m.data[collection] {
		if matches(rec, eq) {
			out = append(out, rec.Clone())
		}
	}
	sortByID(out)
	return out, nil
}

func (m *Memory) List(_ context.Context, collection string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.data[collection]))
	for _, rec := range m.data[collection] {
		out = append(out, rec.Clone())
	}
	sortByID(out)
	return out, nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[collection], id)
	return nil
}

func (m *Memory) DeleteWhere(_ context.Context, collection string, eq map[string]any) (int64, error) {
	if len(eq) == 0 {
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, rec := range m.data[collection] {
		if matches(rec, eq) {
			delete(m.data[collection], id)
			deleted++
		}
	}
	return deleted, nil
}

// Count returns the number of records in a collection.
// Test helper; not part of the Store contract.
func (m *Memory) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[collection])
}

func matches(rec Record, eq map[string]any) bool {
	for k, want := range eq {
		if rec[k] != want {
			return false
		}
	}
	return true
}

func sortByID(recs []Record) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].ID() < recs[j].ID()
	})
}
