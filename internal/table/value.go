// Package table implements the filter, sort and column-configuration
// pipeline shared by every data table in the desk.
package table

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Row is one record as a generic JSON object.
type Row = map[string]any

// RowsOf converts records into rows by a JSON round trip, so the accessor
// keys of a table are the records' JSON field names.
func RowsOf[T any](items []T) ([]Row, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding rows: %w", err)
	}
	rows := []Row{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}
	return rows, nil
}

// Resolve walks a dot path through nested objects. Numeric segments index
// arrays. A path that leads nowhere yields nil.
func Resolve(row Row, path string) any {
	var cur any = row
	for _, part := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case map[string]any:
			cur = v[part]
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			cur = v[i]
		default:
			return nil
		}
	}
	return cur
}

// Stringify renders a resolved value for matching. Nil becomes the empty
// string, arrays are joined with commas and objects are their values in key
// order, joined with spaces. Keys never take part in matching.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case json.Number:
		return x.String()
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = Stringify(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := Stringify(x[k]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(x)
	}
}

// Compare orders two resolved values loosely: numbers numerically, strings
// lexically and booleans as 0 and 1. Nil on either side compares equal.
// Any other pairing compares the stringified values.
func Compare(a, b any) int {
	if a == nil || b == nil {
		return 0
	}

	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}

	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	}

	return strings.Compare(Stringify(a), Stringify(b))
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
