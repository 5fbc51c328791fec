package core

// export.go builds workbooks from live collections: one sheet per
// collection, nested media/array fields flattened into display strings.
// Export is the round-trip counterpart of the workbook importer: an
// unmodified exported sheet re-imports with every row skipped as a
// duplicate.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brahimakil/balagh-admin-sub001/internal/workbook"
)

// CellCeiling is the maximum exported cell length, chosen to stay under
// spreadsheet-editor cell limits.
var CellCeiling = 32000

// TruncationMarker is appended to values cut at CellCeiling.
var TruncationMarker = "... [truncated]"

// ListPreviewCount is how many list entries survive when a joined list
// would blow the cell ceiling.
var ListPreviewCount = 3

// MaxColumnWidth caps the derived display width of any column.
var MaxColumnWidth = 80

// ExportCollection reads every record of one collection and flattens it
// into a sheet. Column order is the schema's field order, preceded by
// the record id.
func (p *Pipeline) ExportCollection(ctx context.Context, collection string) (*workbook.Sheet, error) {
	def, ok := p.registry.Get(collection)
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	recs, err := p.store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", collection, err)
	}

	sheet := &workbook.Sheet{
		Name:   def.SheetName,
		Header: append([]string{"id"}, def.Columns()...),
	}

	for _, rec := range recs {
		row := make([]string, 0, len(sheet.Header))
		row = append(row, rec.ID())
		for _, field := range def.Fields {
			row = append(row, flattenCell(rec[field.Name]))
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	sheet.ColumnWidths = columnWidths(sheet)
	return sheet, nil
}

// ExportAll builds one workbook with one sheet per known collection, in
// import order so the file re-imports without reordering.
func (p *Pipeline) ExportAll(ctx context.Context) (*workbook.Workbook, error) {
	wb := &workbook.Workbook{}

	for _, def := range p.registry.Ordered() {
		sheet, err := p.ExportCollection(ctx, def.Key)
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

// flattenCell renders a stored value as a single display string within
// the cell ceiling.
func flattenCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []string:
		return flattenList(t)
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			items = append(items, stringifyCell(item))
		}
		return flattenList(items)
	case map[string]any:
		encoded, err := json.Marshal(t)
		if err != nil {
			return truncate(fmt.Sprintf("%v", t))
		}
		return truncate(string(encoded))
	default:
		return truncate(stringifyCell(v))
	}
}

// flattenList joins list entries with commas; when the joined string
// would itself exceed the cell ceiling it falls back to the first few
// entries plus a remaining count.
func flattenList(items []string) string {
	joined := joinList(items)
	if len(joined) <= CellCeiling {
		return joined
	}

	preview := items
	if len(preview) > ListPreviewCount {
		preview = preview[:ListPreviewCount]
	}
	rest := len(items) - len(preview)
	short := joinList(preview)
	if rest > 0 {
		short = fmt.Sprintf("%s (+%d more)", short, rest)
	}
	return truncate(short)
}

func joinList(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

// truncate cuts s at the cell ceiling and appends the truncation marker.
// The result never exceeds CellCeiling.
func truncate(s string) string {
	if len(s) <= CellCeiling {
		return s
	}
	cut := CellCeiling - len(TruncationMarker)
	if cut < 0 {
		cut = 0
	}
	return s[:cut] + TruncationMarker
}

// columnWidths derives display widths from the longest value per column
// (header included), capped at MaxColumnWidth.
func columnWidths(sheet *workbook.Sheet) []int {
	widths := make([]int, len(sheet.Header))
	for i, h := range sheet.Header {
		widths[i] = len(h)
	}
	for _, row := range sheet.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] > MaxColumnWidth {
			widths[i] = MaxColumnWidth
		}
	}
	return widths
}
