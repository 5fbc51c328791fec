package core

import (
	"reflect"
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// toDate Tests
// ----------------------------------------------------------------------------

func TestToDate(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		// Spreadsheet serials
		{
			name:  "serial number as float",
			input: float64(45000),
			want:  time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial number as int",
			input: 45000,
			want:  time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial number as string",
			input: "45000",
			want:  time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial zero is the epoch",
			input: float64(0),
			want:  time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC),
		},

		// Date strings
		{
			name:  "ISO date",
			input: "2023-03-15",
			want:  time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 timestamp",
			input: "2023-03-15T00:00:00Z",
			want:  time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "US slash date",
			input: "3/15/2023",
			want:  time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "month name date",
			input: "Mar 15, 2023",
			want:  time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  2023-03-15  ",
			want:  time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
		},

		// Native values
		{
			name:  "native time passes through",
			input: time.Date(2020, time.June, 1, 12, 30, 0, 0, time.UTC),
			want:  time.Date(2020, time.June, 1, 12, 30, 0, 0, time.UTC),
		},

		// Invalid input yields nil, never an error
		{
			name:  "nil cell",
			input: nil,
			want:  nil,
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "malformed date",
			input: "not a date",
			want:  nil,
		},
		{
			name:  "unsupported type",
			input: []string{"2023-03-15"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toDate(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("toDate(%v) = %v, want nil", tt.input, got)
				}
				return
			}
			gotTime, ok := got.(time.Time)
			if !ok {
				t.Fatalf("toDate(%v) = %T, want time.Time", tt.input, got)
			}
			if !gotTime.Equal(tt.want.(time.Time)) {
				t.Errorf("toDate(%v) = %v, want %v", tt.input, gotTime, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// toNumber Tests
// ----------------------------------------------------------------------------

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		nullable bool
		want     any
	}{
		{name: "float passes through", input: float64(3.5), want: float64(3.5)},
		{name: "int widens to float", input: 7, want: float64(7)},
		{name: "numeric string", input: "42", want: float64(42)},
		{name: "decimal string", input: "3.14", want: float64(3.14)},
		{name: "thousands separator stripped", input: "1,234", want: float64(1234)},
		{name: "scientific notation", input: "1.5e2", want: float64(150)},
		{name: "negative", input: "-9", want: float64(-9)},

		// Invalid or empty: default depends on nullability
		{name: "empty string defaults to zero", input: "", want: float64(0)},
		{name: "empty string nullable", input: "", nullable: true, want: nil},
		{name: "garbage defaults to zero", input: "abc", want: float64(0)},
		{name: "garbage nullable", input: "abc", nullable: true, want: nil},
		{name: "nil cell nullable", input: nil, nullable: true, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toNumber(tt.input, tt.nullable)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("toNumber(%v, %v) = %v, want %v", tt.input, tt.nullable, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// toBool Tests
// ----------------------------------------------------------------------------

func TestToBool(t *testing.T) {
	tests := []struct {
		name  string
		input any
		def   bool
		want  bool
	}{
		{name: "native true", input: true, want: true},
		{name: "native false", input: false, def: true, want: false},
		{name: "yes", input: "yes", want: true},
		{name: "uppercase TRUE", input: "TRUE", want: true},
		{name: "one", input: "1", want: true},
		{name: "no beats true default", input: "no", def: true, want: false},
		{name: "zero beats true default", input: "0", def: true, want: false},
		{name: "empty takes default", input: "", def: true, want: true},
		{name: "nil takes default", input: nil, def: true, want: true},
		{name: "unrecognized takes default", input: "maybe", def: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toBool(tt.input, tt.def); got != tt.want {
				t.Errorf("toBool(%v, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// toList Tests
// ----------------------------------------------------------------------------

func TestToList(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "nil cell", input: nil, want: []string{}},
		{name: "empty string", input: "", want: []string{}},
		{name: "existing list", input: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "any slice", input: []any{"a", float64(2)}, want: []string{"a", "2"}},
		{
			name:  "comma joined text",
			input: "one, two , three",
			want:  []string{"one", "two", "three"},
		},
		{
			name:  "trailing comma ignored",
			input: "one,two,",
			want:  []string{"one", "two"},
		},
		{
			name:  "json array",
			input: `["https://a.example/1.jpg","https://a.example/2.jpg"]`,
			want:  []string{"https://a.example/1.jpg", "https://a.example/2.jpg"},
		},
		{
			name:  "malformed json array yields empty",
			input: `["unterminated`,
			want:  []string{},
		},
		{name: "single value", input: "solo", want: []string{"solo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("toList(%v) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// convertDates / storeTimestamp Tests
// ----------------------------------------------------------------------------

func TestConvertDates(t *testing.T) {
	date := time.Date(2023, time.March, 15, 10, 30, 0, 0, time.UTC)

	t.Run("time becomes store timestamp", func(t *testing.T) {
		got := convertDates(date)
		if got != "2023-03-15T10:30:00Z" {
			t.Errorf("convertDates = %v, want 2023-03-15T10:30:00Z", got)
		}
	})

	t.Run("nested maps and slices are walked", func(t *testing.T) {
		in := map[string]any{
			"events": []any{date, "unchanged"},
			"meta":   map[string]any{"when": date},
		}
		got := convertDates(in).(map[string]any)

		events := got["events"].([]any)
		if events[0] != "2023-03-15T10:30:00Z" || events[1] != "unchanged" {
			t.Errorf("slice not converted: %#v", events)
		}
		meta := got["meta"].(map[string]any)
		if meta["when"] != "2023-03-15T10:30:00Z" {
			t.Errorf("nested map not converted: %#v", meta)
		}
	})

	t.Run("non-dates pass through", func(t *testing.T) {
		if got := convertDates("plain"); got != "plain" {
			t.Errorf("convertDates(plain) = %v", got)
		}
	})
}

func TestStoreTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2023, time.March, 15, 12, 0, 0, 0, loc)
	if got := storeTimestamp(in); got != "2023-03-15T10:00:00Z" {
		t.Errorf("storeTimestamp = %q, want 2023-03-15T10:00:00Z", got)
	}
}
