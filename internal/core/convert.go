package core

// convert.go provides cell-level type coercion for imported rows.
//
// Cells arrive loosely typed: strings from CSV sheets, and occasionally
// native values when rows are built programmatically. Coercion handles
// the mess spreadsheet editors leave behind:
//   - several date formats plus raw date serial numbers
//   - lists encoded as JSON arrays or comma-joined text
//   - assorted boolean spellings (yes/no, true/false, 1/0)

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the spreadsheet date serial epoch (1899-12-30). Serial
// 45000 is 45000 days after this date. Editors producing workbook files
// use exactly this epoch; changing it silently shifts every numeric date.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// numberRegex matches integers, decimals and scientific notation.
var numberRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// dateLayouts are tried in order when coercing a date string.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006", "01/02/2006",
	"1-2-2006", "01-02-2006",
	"Jan 2, 2006", "2 Jan 2006",
	"20060102",
}

// toDate coerces a cell to a date. Native dates pass through; strings go
// through the layout list; numbers are treated as spreadsheet serials.
// Invalid input yields nil, never an error.
func toDate(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t
	case float64:
		return serialEpoch.AddDate(0, 0, int(t))
	case int:
		return serialEpoch.AddDate(0, 0, t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if numberRegex.MatchString(s) {
			serial, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil
			}
			return serialEpoch.AddDate(0, 0, int(serial))
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed
			}
		}
		return nil
	default:
		return nil
	}
}

// toNumber coerces a cell to a float64. Empty or invalid input yields
// nil when nullable, 0 otherwise.
func toNumber(v any, nullable bool) any {
	var n float64
	ok := false

	switch t := v.(type) {
	case float64:
		n, ok = t, true
	case int:
		n, ok = float64(t), true
	case string:
		s := strings.TrimSpace(t)
		s = strings.ReplaceAll(s, ",", "")
		if s != "" && numberRegex.MatchString(s) {
			if parsed, err := strconv.ParseFloat(s, 64); err == nil {
				n, ok = parsed, true
			}
		}
	}

	if !ok {
		if nullable {
			return nil
		}
		return float64(0)
	}
	return n
}

// toBool coerces a cell to a boolean. Absent, empty or unrecognized
// values take the field default; "false"-like spellings beat a true
// default, "true"-like spellings beat a false default.
func toBool(v any, def bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "t", "yes", "y", "1":
			return true
		case "false", "f", "no", "n", "0":
			return false
		}
	}
	return def
}

// toList coerces a cell to a string list. Accepts an existing list, a
// JSON-encoded array, or delimiter-joined text. Used for media URL lists
// and plain id lists alike.
func toList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringifyCell(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return []string{}
		}
		if strings.HasPrefix(s, "[") {
			var arr []any
			if err := json.Unmarshal([]byte(s), &arr); err != nil {
				return []string{}
			}
			return toList(arr)
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return []string{}
	}
}

// toText coerces a cell to a trimmed string. Absent cells become "".
func toText(v any) string {
	return strings.TrimSpace(stringifyCell(v))
}

// stringifyCell renders a loosely-typed cell as a string.
func stringifyCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// storeTimestamp renders a date the way the document store persists it.
// Every date-typed value is converted to this form before writing, so
// natural-key queries against persisted records must use it too.
func storeTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// convertDates recursively rewrites every time.Time in a value to the
// store's timestamp representation. Arrays and nested maps are walked.
func convertDates(v any) any {
	switch t := v.(type) {
	case time.Time:
		return storeTimestamp(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = convertDates(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = convertDates(item)
		}
		return out
	default:
		return v
	}
}
