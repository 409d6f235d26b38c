// Package setutil validates enum value lists against their allowed
// declaration order. Filters carry enum values as string slices; before a
// value reaches SQL it must be a member of the column's allow-list.
package setutil

import "fmt"

// Canonicalize validates values against the allowed list, removes
// duplicates, and returns them ordered by allowed declaration order.
// An out-of-list value is an error.
func Canonicalize(values []string, allowed []string) ([]string, error) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		allowedSet[v] = struct{}{}
	}

	selected := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := allowedSet[v]; !ok {
			return nil, fmt.Errorf("invalid enum value: %s", v)
		}
		selected[v] = struct{}{}
	}

	ordered := make([]string, 0, len(selected))
	for _, option := range allowed {
		if _, ok := selected[option]; ok {
			ordered = append(ordered, option)
		}
	}
	return ordered, nil
}

// CanonicalizeAny canonicalizes values provided as []string or []interface{},
// the two shapes GraphQL argument decoding produces.
func CanonicalizeAny(input interface{}, allowed []string) ([]string, error) {
	values, err := normalizeStringSlice(input)
	if err != nil {
		return nil, err
	}
	return Canonicalize(values, allowed)
}

func normalizeStringSlice(input interface{}) ([]string, error) {
	switch v := input.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			strVal, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("enum values must be strings")
			}
			out = append(out, strVal)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("enum values must be an array")
	}
}
