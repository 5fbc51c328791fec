// Package schema is the single registry describing every importable
// collection: its fields, header aliases, natural key, relations, and
// sheet name. The row parser, duplicate detector, relationship validator
// and drift detector all consume the same definitions, so a field exists
// in exactly one place.
package schema

// FieldType represents the expected data type for a collection field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate
	FieldNumber
	FieldBool
	FieldList
)

// Relation declares that a field holds the id of a record in another
// collection. The store does not enforce it; the relationship validator
// does, at import time.
type Relation struct {
	Collection string // Target collection key
	Field      string // Identifier field on the target (always "id" today)
	Label      string // Human label used in validation error messages
}

// FieldSpec defines one field of a collection.
type FieldSpec struct {
	Name     string    // Canonical field name (also the canonical column header)
	Aliases  []string  // Legacy human-readable headers, tried in order after Name
	Type     FieldType // Data type driving coercion
	Nullable bool      // Numbers: empty becomes nil instead of 0
	Default  bool      // Bools: value when the cell is absent or not "false"
	Relation *Relation // Non-nil for soft foreign keys
}

// CollectionDefinition contains everything needed to import, export and
// drift-check one collection.
type CollectionDefinition struct {
	Key        string      // Collection key: "martyrs"
	SheetName  string      // Workbook sheet name: "Martyrs"
	Fields     []FieldSpec // All fields, in export column order
	NaturalKey []string    // Field names forming the duplicate-detection key
}

// Field returns the spec for a canonical field name.
func (d CollectionDefinition) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Columns returns the canonical column headers in export order.
func (d CollectionDefinition) Columns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Name
	}
	return cols
}

// Relations returns the subset of fields that declare a relation.
func (d CollectionDefinition) Relations() []FieldSpec {
	var rels []FieldSpec
	for _, f := range d.Fields {
		if f.Relation != nil {
			rels = append(rels, f)
		}
	}
	return rels
}

// KnownHeaders returns every header the parser accepts for this
// collection: canonical names plus all aliases. Used by drift detection.
func (d CollectionDefinition) KnownHeaders() map[string]bool {
	known := make(map[string]bool, len(d.Fields)*2)
	for _, f := range d.Fields {
		known[f.Name] = true
		for _, a := range f.Aliases {
			known[a] = true
		}
	}
	return known
}
