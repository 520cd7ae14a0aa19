package lint

import (
	"slices"
	"strings"
)

// Rule options arrive as decoded YAML, JSON or environment values, so the
// helpers below accept the loose types those decoders produce and fall back
// to the default for anything else.

// GetOption returns opts[key] when it holds a T, else def.
func GetOption[T any](opts map[string]any, key string, def T) T {
	if v, ok := opts[key].(T); ok {
		return v
	}
	return def
}

// GetStringOption returns a string option.
func GetStringOption(opts map[string]any, key, def string) string {
	return GetOption(opts, key, def)
}

// GetBoolOption returns a bool option.
func GetBoolOption(opts map[string]any, key string, def bool) bool {
	return GetOption(opts, key, def)
}

// GetIntOption returns an integer option given as any Go number type.
func GetIntOption(opts map[string]any, key string, def int) int {
	switch n := opts[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

// GetStringSliceOption returns a list option. Non-string items of a
// decoded []any are dropped.
func GetStringSliceOption(opts map[string]any, key string, def []string) []string {
	switch v := opts[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return def
}

// GetEnumOption returns a string option lower-cased, or def when the value
// is not one of allowed.
func GetEnumOption(opts map[string]any, key string, allowed []string, def string) string {
	if s := strings.ToLower(GetStringOption(opts, key, def)); slices.Contains(allowed, s) {
		return s
	}
	return def
}
