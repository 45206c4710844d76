package xmldict

import "strings"

// StripNamespaces returns a copy of v with namespace prefixes removed from
// element and attribute keys and namespace declarations dropped. Keys that
// collide after stripping are merged into a list.
func StripNamespaces(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			if isNamespaceDecl(k) {
				continue
			}
			key := localKey(k)
			sv := StripNamespaces(child)
			prev, ok := out[key]
			if !ok {
				out[key] = sv
				continue
			}
			if list, isList := prev.([]any); isList {
				out[key] = append(list, sv)
			} else {
				out[key] = []any{prev, sv}
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = StripNamespaces(child)
		}
		return out
	default:
		return v
	}
}

func isNamespaceDecl(k string) bool {
	return k == AttrPrefix+"xmlns" || strings.HasPrefix(k, AttrPrefix+"xmlns:")
}

func localKey(k string) string {
	attr := strings.HasPrefix(k, AttrPrefix)
	name := strings.TrimPrefix(k, AttrPrefix)
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	if attr {
		return AttrPrefix + name
	}
	return name
}
