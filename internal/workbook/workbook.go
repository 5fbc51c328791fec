// Package workbook reads and writes content workbooks. A workbook is a
// zip archive holding one CSV file per sheet; the sheet name is the file
// name without the .csv extension. The first row of each sheet is the
// header row.
package workbook

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

// Sheet is one named grid of cells. Header holds the column names; Rows
// holds the data rows in file order.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string

	// ColumnWidths is display metadata filled in by the export builder:
	// the longest value per column, capped. The CSV container itself
	// carries no styling; the widths ride along for clients that render
	// sheets (the admin UI preview).
	ColumnWidths []int
}

// Workbook is an ordered set of sheets.
type Workbook struct {
	Sheets []*Sheet
}

// Sheet returns the sheet with the given name, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// RowMap returns data row i as a header-keyed map. Short rows yield
// missing keys rather than empty strings, so absent and empty cells are
// distinguishable to the parser.
func (s *Sheet) RowMap(i int) map[string]string {
	row := s.Rows[i]
	m := make(map[string]string, len(s.Header))
	for j, h := range s.Header {
		if j < len(row) {
			m[h] = row[j]
		}
	}
	return m
}

// RowMaps returns every data row as a header-keyed map.
func (s *Sheet) RowMaps() []map[string]string {
	out := make([]map[string]string, len(s.Rows))
	for i := range s.Rows {
		out[i] = s.RowMap(i)
	}
	return out
}

// Read parses a workbook from zip archive bytes. Non-CSV entries are
// ignored. Sheets come back sorted by name for deterministic iteration;
// the importer applies its own dependency order anyway.
func Read(data []byte) (*Workbook, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open workbook archive: %w", err)
	}

	wb := &Workbook{}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(path.Ext(f.Name), ".csv") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open sheet %s: %w", f.Name, err)
		}
		sheet, err := readSheet(sheetName(f.Name), rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	sort.Slice(wb.Sheets, func(i, j int) bool {
		return wb.Sheets[i].Name < wb.Sheets[j].Name
	})
	return wb, nil
}

// ReadFile reads a workbook from disk.
func ReadFile(name string) (*Workbook, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read workbook file: %w", err)
	}
	return Read(data)
}

// Write serializes the workbook as a zip archive of CSV files.
func (w *Workbook) Write(out io.Writer) error {
	zw := zip.NewWriter(out)

	for _, s := range w.Sheets {
		fw, err := zw.Create(s.Name + ".csv")
		if err != nil {
			return fmt.Errorf("create sheet %s: %w", s.Name, err)
		}
		if err := writeSheet(fw, s); err != nil {
			return fmt.Errorf("write sheet %s: %w", s.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize workbook archive: %w", err)
	}
	return nil
}

// WriteFile writes the workbook to disk.
func (w *Workbook) WriteFile(name string) error {
	var buf bytes.Buffer
	if err := w.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write workbook file: %w", err)
	}
	return nil
}

// ReadSheetCSV parses a single bare CSV stream as one sheet, for the
// single-collection import endpoint.
func ReadSheetCSV(name string, r io.Reader) (*Sheet, error) {
	return readSheet(name, r)
}

// WriteSheetCSV writes a single sheet as bare CSV, without the zip
// container.
func WriteSheetCSV(w io.Writer, s *Sheet) error {
	return writeSheet(w, s)
}

func readSheet(name string, r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, import validates per-row

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse sheet %s: %w", name, err)
	}

	sheet := &Sheet{Name: name}
	if len(records) == 0 {
		return sheet, nil
	}

	sheet.Header = trimHeader(records[0])
	for _, row := range records[1:] {
		if isEmptyRow(row) {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func writeSheet(w io.Writer, s *Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return err
	}
	for _, row := range s.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sheetName(file string) string {
	base := path.Base(file)
	return strings.TrimSuffix(base, path.Ext(base))
}

func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
