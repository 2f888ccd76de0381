package crex

import (
	"strconv"
	"strings"
)

// The embedded payload is decoded into a generic map tree because the
// upstream shape drifts between page templates. Every accessor below
// tolerates a missing or differently-typed node and degrades to a zero
// value instead of failing.

func dig(root any, path ...string) (any, bool) {
	node := root
	for _, key := range path {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

func digMap(root any, path ...string) (map[string]any, bool) {
	node, ok := dig(root, path...)
	if !ok {
		return nil, false
	}
	m, ok := node.(map[string]any)
	return m, ok
}

func digList(root any, path ...string) ([]any, bool) {
	node, ok := dig(root, path...)
	if !ok {
		return nil, false
	}
	list, ok := node.([]any)
	return list, ok
}

func mapField(m map[string]any, key string) (map[string]any, bool) {
	out, ok := m[key].(map[string]any)
	return out, ok
}

func listField(m map[string]any, key string) []any {
	out, _ := m[key].([]any)
	return out
}

func strField(m map[string]any, key string) string {
	return asString(m[key])
}

func intField(m map[string]any, key string) int {
	return int(asFloat(m[key]))
}

func floatField(m map[string]any, key string) float64 {
	return asFloat(m[key])
}

func boolField(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func asString(v any) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		// A single scalar where a list is expected is treated as a
		// one-element list.
		if s := asString(v); s != "" {
			return []string{s}
		}
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := asString(item); s != "" {
			out = append(out, s)
			continue
		}
		// Officials sometimes arrive as {"name": "..."} objects.
		if m, ok := item.(map[string]any); ok {
			if name := strField(m, "name"); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
