package core

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/brahimakil/balagh-admin-sub001/internal/store"
)

// ----------------------------------------------------------------------------
// ExportCollection Tests
// ----------------------------------------------------------------------------

func TestExportCollection(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPipeline(t)

	seedRecord(t, st, "sectors", "s-1", store.Record{
		"nameEn":        "North",
		"nameAr":        "الشمال",
		"descriptionEn": "Northern sector",
	})

	sheet, err := p.ExportCollection(ctx, "sectors")
	if err != nil {
		t.Fatalf("ExportCollection: %v", err)
	}

	wantHeader := []string{"id", "nameEn", "nameAr", "descriptionEn", "descriptionAr"}
	if !reflect.DeepEqual(sheet.Header, wantHeader) {
		t.Errorf("header = %v, want %v", sheet.Header, wantHeader)
	}
	if len(sheet.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(sheet.Rows))
	}
	if sheet.Rows[0][0] != "s-1" || sheet.Rows[0][1] != "North" {
		t.Errorf("row = %v", sheet.Rows[0])
	}
	// Absent field renders as empty cell, not a hole.
	if sheet.Rows[0][4] != "" {
		t.Errorf("descriptionAr cell = %q, want empty", sheet.Rows[0][4])
	}
	if len(sheet.ColumnWidths) != len(wantHeader) {
		t.Errorf("column widths = %d entries, want %d", len(sheet.ColumnWidths), len(wantHeader))
	}
}

func TestExportCollection_ListsFlattened(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPipeline(t)

	seedRecord(t, st, "legends", "l-1", store.Record{
		"nameEn": "Legend",
		"nameAr": "أسطورة",
		"photos": []any{"a.jpg", "b.jpg"},
	})

	sheet, err := p.ExportCollection(ctx, "legends")
	if err != nil {
		t.Fatalf("ExportCollection: %v", err)
	}

	photosCol := -1
	for i, h := range sheet.Header {
		if h == "photos" {
			photosCol = i
		}
	}
	if got := sheet.Rows[0][photosCol]; got != "a.jpg, b.jpg" {
		t.Errorf("photos cell = %q, want comma-joined list", got)
	}
}

func TestExportCollection_UnknownCollection(t *testing.T) {
	p, _ := newTestPipeline(t)

	if _, err := p.ExportCollection(context.Background(), "nonexistent"); err == nil {
		t.Error("unknown collection must error")
	}
}

// ----------------------------------------------------------------------------
// ExportAll Tests
// ----------------------------------------------------------------------------

func TestExportAll_SheetOrderMatchesImportOrder(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPipeline(t)

	wb, err := p.ExportAll(ctx)
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}

	wantNames := []string{
		"Wars", "Sectors", "Villages", "Activity Types", "Locations",
		"Martyrs", "Legends", "Activities", "News",
	}
	if !reflect.DeepEqual(wb.SheetNames(), wantNames) {
		t.Errorf("sheet names = %v, want %v", wb.SheetNames(), wantNames)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, mem := newTestPipeline(t)

	res := p.ImportCollection(ctx, "activities", []ImportRow{
		{"nameEn": "March", "nameAr": "مسيرة", "date": "2023-03-15", "durationHours": "2"},
	})
	if res.Imported != 1 {
		t.Fatalf("setup import: %v", res.Errors)
	}

	wb, err := p.ExportAll(ctx)
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}

	// Re-importing an unmodified export skips every row as a duplicate.
	summary := p.ImportWorkbook(ctx, wb)
	if !summary.Success {
		t.Fatalf("re-import failed: %+v", summary.Results)
	}
	if summary.TotalImported != 0 || summary.TotalSkipped != 1 {
		t.Errorf("re-import imported=%d skipped=%d, want 0/1",
			summary.TotalImported, summary.TotalSkipped)
	}
	if mem.Count("activities") != 1 {
		t.Errorf("store holds %d activities, want 1", mem.Count("activities"))
	}
}

// ----------------------------------------------------------------------------
// Flattening Tests
// ----------------------------------------------------------------------------

func TestTruncate(t *testing.T) {
	origCeiling := CellCeiling
	CellCeiling = 50
	defer func() { CellCeiling = origCeiling }()

	long := strings.Repeat("x", 200)
	got := truncate(long)

	if len(got) > CellCeiling {
		t.Errorf("truncated length = %d, exceeds ceiling %d", len(got), CellCeiling)
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Errorf("truncated value %q missing marker", got)
	}

	if got := truncate("short"); got != "short" {
		t.Errorf("short value modified: %q", got)
	}
}

func TestFlattenList_FallsBackToPreview(t *testing.T) {
	origCeiling := CellCeiling
	CellCeiling = 40
	defer func() { CellCeiling = origCeiling }()

	items := []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc", "dddddddddd", "eeeeeeeeee"}
	got := flattenList(items)

	if len(got) > CellCeiling {
		t.Errorf("preview length = %d, exceeds ceiling %d", len(got), CellCeiling)
	}
	if !strings.Contains(got, "more)") {
		t.Errorf("preview %q missing remaining count", got)
	}
}

func TestFlattenCell(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "string", input: "hello", want: "hello"},
		{name: "number", input: float64(3.5), want: "3.5"},
		{name: "bool", input: true, want: "true"},
		{name: "string list", input: []string{"a", "b"}, want: "a, b"},
		{name: "any list", input: []any{"a", float64(2)}, want: "a, 2"},
		{name: "nested map as json", input: map[string]any{"k": "v"}, want: `{"k":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flattenCell(tt.input); got != tt.want {
				t.Errorf("flattenCell(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
