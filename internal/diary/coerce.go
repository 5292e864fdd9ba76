package diary

import (
	"fmt"
	"strconv"
	"strings"
)

// Coercion helpers for the loosely-typed map form. Model output and the
// review UI both hand us map[string]any with whatever scalar types the JSON
// decoder produced.

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// asBool applies truthiness: false, nil, zero, "", "false" and "no" are
// falsy; everything else is truthy.
func asBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s != "" && s != "false" && s != "no" && s != "0" && s != "null"
	default:
		return true
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

// asMapSlice keeps only dictionary-shaped entries of a raw list value.
func asMapSlice(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		// already-typed map slices appear when round-tripping ToMap output
		if typed, ok := v.([]map[string]any); ok {
			return typed
		}
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
