package normalize

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"hotel_content/internal/xmldict"
)

/********** null-safe traversal **********/

// dig walks v along path. String steps index maps, int steps index lists.
// Any step that meets a non-container, a missing key or an out-of-range
// index yields nil. Index 0 applied to a lone map returns the map itself,
// since xml-derived payloads collapse one-element lists.
func dig(v any, path ...any) any {
	cur := v
	for _, step := range path {
		if cur == nil {
			return nil
		}
		switch k := step.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[k]
		case int:
			switch c := cur.(type) {
			case []any:
				if k < 0 || k >= len(c) {
					return nil
				}
				cur = c[k]
			case map[string]any:
				if k != 0 {
					return nil
				}
			default:
				return nil
			}
		default:
			return nil
		}
	}
	return cur
}

// getOr is dig with a default for nil results.
func getOr(v any, def any, path ...any) any {
	if out := dig(v, path...); out != nil {
		return out
	}
	return def
}

func digStr(v any, path ...any) string { return str(dig(v, path...)) }

func digSP(v any, path ...any) *string { return sp(dig(v, path...)) }

func digList(v any, path ...any) []any { return list(dig(v, path...)) }

func digMap(v any, path ...any) map[string]any {
	m, _ := dig(v, path...).(map[string]any)
	return m
}

func digFloat(v any, path ...any) *float64 { return flt(dig(v, path...)) }

/********** scalar coercion **********/

// str renders scalars as trimmed strings. Maps holding "#text" render their
// text; other containers render as "".
func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		return str(t[xmldict.TextKey])
	}
	return ""
}

func sp(v any) *string { return ptr(str(v)) }

// ptr returns nil for the empty string.
func ptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// flt accepts numbers and numeric strings, tolerating a decimal comma.
func flt(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return &f
		}
	default:
		s := strings.ReplaceAll(str(v), ",", ".")
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}

// list normalizes "zero, one or many" into a slice.
func list(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{v}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, sep)
}

// splitList splits s on sep, trimming and dropping empties.
func splitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// stringsOf collects str() of every element of l, dropping empties.
func stringsOf(l []any) []string {
	out := make([]string, 0, len(l))
	for _, it := range l {
		if s := str(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// sortedKeys returns map keys in a stable order for maps keyed by supplier IDs.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// findFirst returns the first value stored under key anywhere below v,
// searching breadth-first so shallower matches win.
func findFirst(v any, key string) any {
	queue := []any{v}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		switch t := cur.(type) {
		case map[string]any:
			if out, ok := t[key]; ok {
				return out
			}
			for _, k := range sortedKeys(t) {
				queue = append(queue, t[k])
			}
		case []any:
			queue = append(queue, t...)
		}
	}
	return nil
}

func appendNonEmpty(dst []string, vals ...string) []string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			dst = append(dst, s)
		}
	}
	return dst
}
