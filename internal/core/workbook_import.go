package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brahimakil/balagh-admin-sub001/internal/workbook"
)

// ImportWorkbook drives ImportCollection across every sheet of a
// workbook, in registry import order, so relation targets land before
// the collections that reference them.
//
// Missing sheets are skipped with a log note. A sheet with zero data
// rows records a trivial success. A failure inside one collection's
// import is isolated: it becomes that collection's synthetic error
// result and the remaining collections still run.
func (p *Pipeline) ImportWorkbook(ctx context.Context, wb *workbook.Workbook) *WorkbookSummary {
	summary := &WorkbookSummary{
		Success: true,
		Results: make(map[string]*ImportResult),
		Drift:   p.DetectColumnDrift(wb),
	}

	for _, def := range p.registry.Ordered() {
		sheet := wb.Sheet(def.SheetName)
		if sheet == nil {
			slog.Info("workbook has no sheet for collection, skipping",
				"collection", def.Key, "sheet", def.SheetName)
			continue
		}

		result := p.importSheet(ctx, def.Key, sheet)
		summary.Results[def.Key] = result
		summary.TotalImported += result.Imported
		summary.TotalSkipped += result.Skipped
		summary.TotalErrors += len(result.Errors)
		if !result.Success {
			summary.Success = false
		}
	}

	slog.Info("workbook import finished",
		"collections", len(summary.Results),
		"imported", summary.TotalImported,
		"skipped", summary.TotalSkipped,
		"errors", summary.TotalErrors,
	)
	return summary
}

// importSheet imports one sheet, converting a panic escaping the
// collection importer into a single whole-collection error result.
func (p *Pipeline) importSheet(ctx context.Context, collection string, sheet *workbook.Sheet) (result *ImportResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &ImportResult{Collection: collection}
			result.addError(0, "import aborted: %v", r)
			result.finalize()
		}
	}()

	if len(sheet.Rows) == 0 {
		result = &ImportResult{Collection: collection}
		result.finalize()
		result.Details = "sheet is empty"
		return result
	}

	return p.ImportCollection(ctx, collection, RowsFromSheet(sheet.RowMaps()))
}

// DetectColumnDrift compares each known sheet's headers against the
// registry and reports columns the schema does not recognize. Purely
// informational: unknown columns are ignored during import, never an
// error. Sheets with zero data rows are skipped.
func (p *Pipeline) DetectColumnDrift(wb *workbook.Workbook) []DriftReport {
	var reports []DriftReport

	for _, def := range p.registry.Ordered() {
		sheet := wb.Sheet(def.SheetName)
		if sheet == nil || len(sheet.Rows) == 0 {
			continue
		}

		known := def.KnownHeaders()
		known["id"] = true // exported workbooks carry the record id

		var unknown []string
		for _, h := range sheet.Header {
			if h != "" && !known[h] {
				unknown = append(unknown, h)
			}
		}
		if len(unknown) > 0 {
			reports = append(reports, DriftReport{
				Collection:     def.Key,
				UnknownColumns: unknown,
			})
		}
	}
	return reports
}

// SheetCollection maps a sheet name to its collection key, for callers
// that accept standalone sheets.
func (p *Pipeline) SheetCollection(sheetName string) (string, error) {
	def, ok := p.registry.BySheetName(sheetName)
	if !ok {
		return "", fmt.Errorf("no collection mapped to sheet %q", sheetName)
	}
	return def.Key, nil
}
