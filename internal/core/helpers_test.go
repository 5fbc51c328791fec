package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brahimakil/balagh-admin-sub001/internal/schema"
	"github.com/brahimakil/balagh-admin-sub001/internal/store"
)

// newTestPipeline builds a pipeline over a fresh in-memory store and the
// full collection registry, with a fixed clock and sequential ids so
// assertions are deterministic.
func newTestPipeline(t *testing.T) (*Pipeline, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	p := New(mem, schema.Default)

	p.now = func() time.Time {
		return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	}
	seq := 0
	p.newID = func() string {
		seq++
		return fmt.Sprintf("imp-test-%d", seq)
	}
	return p, mem
}

// seedRecord inserts a record directly into the store, bypassing the
// import pipeline. Used to set up relation targets and manual records.
func seedRecord(t *testing.T, st store.Store, collection, id string, rec store.Record) {
	t.Helper()
	if err := st.Put(context.Background(), collection, id, rec); err != nil {
		t.Fatalf("seed %s/%s: %v", collection, id, err)
	}
}

// sectorRow returns a minimal valid sectors sheet row.
func sectorRow(nameEn, nameAr string) ImportRow {
	return ImportRow{"nameEn": nameEn, "nameAr": nameAr}
}
