package core

import (
	"github.com/brahimakil/balagh-admin-sub001/internal/schema"
	"github.com/brahimakil/balagh-admin-sub001/internal/store"
)

// ParseRow converts one loosely-typed sheet row into a normalized record
// for the collection. Pure: no I/O, never fails; per-type defaults
// absorb bad input. An unknown collection yields an empty record (the
// importer reports the unknown-collection error separately).
func (p *Pipeline) ParseRow(collection string, row ImportRow) store.Record {
	def, ok := p.registry.Get(collection)
	if !ok {
		return store.Record{}
	}

	rec := make(store.Record, len(def.Fields))
	for _, field := range def.Fields {
		raw := lookupCell(row, field)

		switch field.Type {
		case schema.FieldDate:
			rec[field.Name] = toDate(raw)
		case schema.FieldNumber:
			rec[field.Name] = toNumber(raw, field.Nullable)
		case schema.FieldBool:
			rec[field.Name] = toBool(raw, field.Default)
		case schema.FieldList:
			rec[field.Name] = toList(raw)
		default:
			rec[field.Name] = toText(raw)
		}
	}
	return rec
}

// lookupCell finds a field's cell by trying the canonical name first,
// then each legacy header alias in order. First non-empty match wins.
func lookupCell(row ImportRow, field schema.FieldSpec) any {
	if v, ok := row[field.Name]; ok && !isEmptyCell(v) {
		return v
	}
	for _, alias := range field.Aliases {
		if v, ok := row[alias]; ok && !isEmptyCell(v) {
			return v
		}
	}
	return nil
}

func isEmptyCell(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return toText(s) == ""
	}
	return false
}
