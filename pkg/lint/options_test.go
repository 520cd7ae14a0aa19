package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	opts := map[string]any{
		"int":      3,
		"uint":     uint64(4),
		"float":    5.0,
		"str":      "Implicit",
		"bool":     true,
		"strs":     []any{"a", 1, "b"},
		"typed":    []string{"x"},
		"mismatch": "seven",
	}

	assert.Equal(t, 3, GetIntOption(opts, "int", 0))
	assert.Equal(t, 4, GetIntOption(opts, "uint", 0))
	assert.Equal(t, 5, GetIntOption(opts, "float", 0))
	assert.Equal(t, 9, GetIntOption(opts, "mismatch", 9))
	assert.Equal(t, 9, GetIntOption(nil, "int", 9))

	assert.Equal(t, "Implicit", GetStringOption(opts, "str", ""))
	assert.Equal(t, "d", GetStringOption(opts, "int", "d"))
	assert.True(t, GetBoolOption(opts, "bool", false))
	assert.False(t, GetBoolOption(opts, "missing", false))

	assert.Equal(t, []string{"a", "b"}, GetStringSliceOption(opts, "strs", nil))
	assert.Equal(t, []string{"x"}, GetStringSliceOption(opts, "typed", nil))
	assert.Equal(t, []string{"z"}, GetStringSliceOption(opts, "str", []string{"z"}))

	allowed := []string{"explicit", "implicit"}
	assert.Equal(t, "implicit", GetEnumOption(opts, "str", allowed, "explicit"))
	assert.Equal(t, "explicit", GetEnumOption(opts, "mismatch", allowed, "explicit"))
	assert.Equal(t, "explicit", GetEnumOption(nil, "str", allowed, "explicit"))
}
