// Package core implements the bulk data exchange pipeline: parsing
// workbook rows into collection records, duplicate detection by natural
// key, relationship validation, per-collection and whole-workbook import
// orchestration, column drift detection, and the export builder.
package core

import (
	"fmt"
	"strings"
)

// ImportSource is the provenance marker stamped on every record the
// pipeline creates, enabling later bulk cleanup of imported records only.
const ImportSource = "bulk-import"

// rowOffset converts a zero-based data row index to the spreadsheet line
// number operators see: one header row plus 1-based numbering.
const rowOffset = 2

// ImportRow is one sheet row as a loosely-typed, header-keyed mapping.
// Cells are string | float64 | bool | nil, plus native dates and lists
// when rows are built programmatically. Ephemeral; exists only during a
// single import pass.
type ImportRow map[string]any

// RowsFromSheet converts CSV string rows to ImportRows.
func RowsFromSheet(rows []map[string]string) []ImportRow {
	out := make([]ImportRow, len(rows))
	for i, row := range rows {
		r := make(ImportRow, len(row))
		for k, v := range row {
			r[k] = v
		}
		out[i] = r
	}
	return out
}

// RowError is one row-level import failure.
type RowError struct {
	Row     int    `json:"row"` // Spreadsheet line number; 0 for collection-level errors
	Message string `json:"message"`
}

// ImportResult is the outcome of importing one collection's rows.
type ImportResult struct {
	Collection string     `json:"collection"`
	Imported   int        `json:"imported"`
	Skipped    int        `json:"skipped"`
	Errors     []RowError `json:"errors,omitempty"`
	Success    bool       `json:"success"`
	Details    string     `json:"details"`
}

// finalize derives Success and the summary line from the counts.
func (r *ImportResult) finalize() {
	r.Success = len(r.Errors) == 0
	r.Details = fmt.Sprintf("%d imported, %d skipped (duplicates), %d errors",
		r.Imported, r.Skipped, len(r.Errors))
}

// addError records a row-level failure.
func (r *ImportResult) addError(row int, format string, args ...any) {
	r.Errors = append(r.Errors, RowError{Row: row, Message: fmt.Sprintf(format, args...)})
}

// DriftReport lists the unknown columns found on one collection's sheet.
type DriftReport struct {
	Collection     string   `json:"collection"`
	UnknownColumns []string `json:"unknownColumns"`
}

// WorkbookSummary aggregates every collection's result for one workbook
// import, plus grand totals and column drift warnings.
type WorkbookSummary struct {
	Success       bool                     `json:"success"`
	Results       map[string]*ImportResult `json:"results"`
	TotalImported int                      `json:"totalImported"`
	TotalSkipped  int                      `json:"totalSkipped"`
	TotalErrors   int                      `json:"totalErrors"`
	Drift         []DriftReport            `json:"drift,omitempty"`
}

// ErrorPreview renders the first n error messages plus an "and K more"
// suffix, keeping operator-facing summaries readable on large imports.
// The full error list stays available on the structured result.
func ErrorPreview(errs []RowError, n int) string {
	if len(errs) == 0 {
		return ""
	}

	shown := len(errs)
	if shown > n {
		shown = n
	}

	parts := make([]string, 0, shown+1)
	for _, e := range errs[:shown] {
		if e.Row > 0 {
			parts = append(parts, fmt.Sprintf("row %d: %s", e.Row, e.Message))
		} else {
			parts = append(parts, e.Message)
		}
	}
	if rest := len(errs) - shown; rest > 0 {
		parts = append(parts, fmt.Sprintf("and %d more", rest))
	}
	return strings.Join(parts, "; ")
}
