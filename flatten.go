package jsonrepair

import jsoniter "github.com/json-iterator/go"

// FlattenInnerJSON walks a decoded value and replaces every string that
// is itself a valid JSON object or array with its parsed form, turning a
// doubly-encoded
// document like {"body": "{\"id\":1}"} into {"body": {"id": 1}}. It
// recurses into the replacement, so nesting of any depth unwraps in one
// pass.
func FlattenInnerJSON(v any) any {
	switch t := v.(type) {
	case string:
		if inner, ok := tryParseInnerJSON(t); ok {
			return FlattenInnerJSON(inner)
		}
		return t
	case map[string]any:
		for k, child := range t {
			t[k] = FlattenInnerJSON(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = FlattenInnerJSON(child)
		}
		return t
	default:
		return v
	}
}

// tryParseInnerJSON reports whether s parses as a JSON object or array.
// A bare quoted scalar like "true" or "1" is left as a string, since
// promoting it would change its meaning rather than just its shape.
func tryParseInnerJSON(s string) (any, bool) {
	trimmed := rtrimASCIIWhitespace([]byte(s))
	start := 0
	for start < len(trimmed) && isASCIIWhitespace(trimmed[start]) {
		start++
	}
	if start >= len(trimmed) || (trimmed[start] != '{' && trimmed[start] != '[') {
		return nil, false
	}
	var v any
	if err := jsoniter.UnmarshalFromString(s, &v); err != nil {
		return nil, false
	}
	return v, true
}
