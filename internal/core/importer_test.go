package core

import (
	"context"
	"strings"
	"testing"

	"github.com/brahimakil/balagh-admin-sub001/internal/store"
)

// ----------------------------------------------------------------------------
// ImportCollection Tests
// ----------------------------------------------------------------------------

func TestImportCollection_HappyPath(t *testing.T) {
	ctx := context.Background()
	p, mem := newTestPipeline(t)

	res := p.ImportCollection(ctx, "sectors", []ImportRow{
		sectorRow("North", "الشمال"),
		sectorRow("South", "الجنوب"),
	})

	if !res.Success {
		t.Fatalf("import failed: %v", res.Errors)
	}
	if res.Imported != 2 || res.Skipped != 0 {
		t.Errorf("imported=%d skipped=%d, want 2/0", res.Imported, res.Skipped)
	}
	if res.Details != "2 imported, 0 skipped (duplicates), 0 errors" {
		t.Errorf("details = %q", res.Details)
	}
	if mem.Count("sectors") != 2 {
		t.Errorf("store holds %d records, want 2", mem.Count("sectors"))
	}
}

func TestImportCollection_ProvenanceStamp(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPipeline(t)

	res := p.ImportCollection(ctx, "sectors", []ImportRow{sectorRow("North", "الشمال")})
	if !res.Success {
		t.Fatalf("import failed: %v", res.Errors)
	}

	recs, err := st.List(ctx, "sectors")
	if err != nil {
		t.Fatal(err)
	}
	rec := recs[0]

	if rec["importedBy"] != ImportSource {
		t.Errorf("importedBy = %v, want %q", rec["importedBy"], ImportSource)
	}
	want := "2024-01-15T09:00:00Z"
	for _, field := range []string{"createdAt", "updatedAt", "importedAt"} {
		if rec[field] != want {
			t.Errorf("%s = %v, want %s", field, rec[field], want)
		}
	}
	if !strings.HasPrefix(rec.ID(), "imp-") {
		t.Errorf("id = %q, want imp- prefix", rec.ID())
	}
}

func TestImportCollection_RowIsolation(t *testing.T) {
	ctx := context.Background()
	p, mem := newTestPipeline(t)

	// Ten martyrs rows; one references a war that does not exist. The
	// bad row errors, the other nine import.
	rows := make([]ImportRow, 10)
	for i := range rows {
		rows[i] = ImportRow{
			"nameEn": "Martyr " + string(rune('A'+i)),
			"nameAr": "شهيد " + string(rune('A'+i)),
		}
	}
	rows[4]["warId"] = "war-missing"

	res := p.ImportCollection(ctx, "martyrs", rows)

	if res.Success {
		t.Error("result with errors must not be Success")
	}
	if res.Imported != 9 {
		t.Errorf("imported = %d, want 9", res.Imported)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly 1", res.Errors)
	}
	// Row 4 of the data is spreadsheet line 6 (header + 1-based).
	if res.Errors[0].Row != 6 {
		t.Errorf("error row = %d, want 6", res.Errors[0].Row)
	}
	if !strings.Contains(res.Errors[0].Message, `War "war-missing" not found`) {
		t.Errorf("error message = %q", res.Errors[0].Message)
	}
	if mem.Count("martyrs") != 9 {
		t.Errorf("store holds %d records, want 9", mem.Count("martyrs"))
	}
}

func TestImportCollection_DuplicatesSkipped(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPipeline(t)

	seedRecord(t, st, "sectors", "s-1", store.Record{
		"nameEn": "North", "nameAr": "الشمال",
	})

	res := p.ImportCollection(ctx, "sectors", []ImportRow{
		sectorRow("North", "الشمال"), // existing record
		sectorRow("South", "الجنوب"), // new
		sectorRow("South", "الجنوب"), // repeats within the same file
	})

	if !res.Success {
		t.Fatalf("import failed: %v", res.Errors)
	}
	if res.Imported != 1 || res.Skipped != 2 {
		t.Errorf("imported=%d skipped=%d, want 1/2", res.Imported, res.Skipped)
	}
}

func TestImportCollection_Idempotent(t *testing.T) {
	ctx := context.Background()
	p, mem := newTestPipeline(t)

	rows := []ImportRow{
		sectorRow("North", "الشمال"),
		sectorRow("South", "الجنوب"),
	}

	first := p.ImportCollection(ctx, "sectors", rows)
	if first.Imported != 2 {
		t.Fatalf("first run imported %d, want 2", first.Imported)
	}

	second := p.ImportCollection(ctx, "sectors", rows)
	if second.Imported != 0 || second.Skipped != 2 {
		t.Errorf("second run imported=%d skipped=%d, want 0/2", second.Imported, second.Skipped)
	}
	if mem.Count("sectors") != 2 {
		t.Errorf("store holds %d records after re-import, want 2", mem.Count("sectors"))
	}
}

func TestImportCollection_UnknownCollection(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPipeline(t)

	res := p.ImportCollection(ctx, "nonexistent", []ImportRow{{"nameEn": "x"}})

	if res.Success {
		t.Error("unknown collection must fail")
	}
	if len(res.Errors) != 1 || res.Errors[0].Row != 0 {
		t.Fatalf("errors = %v, want one row-0 error", res.Errors)
	}
	if !strings.Contains(res.Errors[0].Message, "unknown collection") {
		t.Errorf("message = %q", res.Errors[0].Message)
	}
}

// ----------------------------------------------------------------------------
// Purge Tests
// ----------------------------------------------------------------------------

func TestPurgeImported(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPipeline(t)

	// One manual record, two imported.
	seedRecord(t, st, "sectors", "manual-1", store.Record{
		"nameEn": "Manual", "nameAr": "يدوي",
	})
	res := p.ImportCollection(ctx, "sectors", []ImportRow{
		sectorRow("North", "الشمال"),
		sectorRow("South", "الجنوب"),
	})
	if res.Imported != 2 {
		t.Fatalf("setup import: %v", res.Errors)
	}

	n, err := p.PurgeImported(ctx, "sectors")
	if err != nil {
		t.Fatalf("PurgeImported: %v", err)
	}
	if n != 2 {
		t.Errorf("purged %d, want 2", n)
	}

	if _, err := st.Get(ctx, "sectors", "manual-1"); err != nil {
		t.Error("manual record must survive the purge")
	}
}

func TestPurgeAllImported(t *testing.T) {
	ctx := context.Background()
	p, mem := newTestPipeline(t)

	p.ImportCollection(ctx, "sectors", []ImportRow{sectorRow("North", "الشمال")})
	p.ImportCollection(ctx, "villages", []ImportRow{sectorRow("Aita", "عيتا")})

	n, err := p.PurgeAllImported(ctx)
	if err != nil {
		t.Fatalf("PurgeAllImported: %v", err)
	}
	if n != 2 {
		t.Errorf("purged %d, want 2", n)
	}
	if mem.Count("sectors")+mem.Count("villages") != 0 {
		t.Error("imported records remain after purge")
	}
}

func TestCountImported(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPipeline(t)

	seedRecord(t, st, "sectors", "manual-1", store.Record{"nameEn": "Manual", "nameAr": "يدوي"})
	p.ImportCollection(ctx, "sectors", []ImportRow{sectorRow("North", "الشمال")})

	n, err := p.CountImported(ctx, "sectors")
	if err != nil {
		t.Fatalf("CountImported: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}

	if _, err := p.CountImported(ctx, "nonexistent"); err == nil {
		t.Error("unknown collection must error")
	}
}
