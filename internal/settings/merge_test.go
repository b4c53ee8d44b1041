package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name    string
		base    map[string]any
		overlay map[string]any
		want    map[string]any
	}{
		{
			name: "basic merge overlay wins",
			base: map[string]any{
				"key1": "base1",
				"key2": "base2",
			},
			overlay: map[string]any{
				"key2": "overlay2",
				"key3": "overlay3",
			},
			want: map[string]any{
				"key1": "base1",
				"key2": "overlay2",
				"key3": "overlay3",
			},
		},
		{
			name: "nested override preserves siblings",
			base: map[string]any{
				"replicas": 2,
				"resources": map[string]any{
					"cpu":    "100m",
					"memory": "128Mi",
				},
			},
			overlay: map[string]any{
				"resources": map[string]any{
					"cpu": "500m",
				},
			},
			want: map[string]any{
				"replicas": 2,
				"resources": map[string]any{
					"cpu":    "500m",
					"memory": "128Mi",
				},
			},
		},
		{
			name: "list replaced wholesale",
			base: map[string]any{
				"ports": []any{80, 443},
			},
			overlay: map[string]any{
				"ports": []any{8080},
			},
			want: map[string]any{
				"ports": []any{8080},
			},
		},
		{
			name: "scalar overrides mapping",
			base: map[string]any{
				"resources": map[string]any{"cpu": "100m"},
			},
			overlay: map[string]any{
				"resources": "unlimited",
			},
			want: map[string]any{
				"resources": "unlimited",
			},
		},
		{
			name: "mapping overrides scalar",
			base: map[string]any{
				"resources": "unlimited",
			},
			overlay: map[string]any{
				"resources": map[string]any{"cpu": "100m"},
			},
			want: map[string]any{
				"resources": map[string]any{"cpu": "100m"},
			},
		},
		{
			name: "empty overlay",
			base: map[string]any{
				"key": "value",
			},
			overlay: map[string]any{},
			want: map[string]any{
				"key": "value",
			},
		},
		{
			name:    "nil base",
			base:    nil,
			overlay: map[string]any{"key": "value"},
			want:    map[string]any{"key": "value"},
		},
		{
			name:    "nil overlay",
			base:    map[string]any{"key": "value"},
			overlay: nil,
			want:    map[string]any{"key": "value"},
		},
		{
			name: "deeply nested merge",
			base: map[string]any{
				"level1": map[string]any{
					"level2": map[string]any{
						"level3": "base",
						"keep":   true,
					},
				},
			},
			overlay: map[string]any{
				"level1": map[string]any{
					"level2": map[string]any{
						"level3": "overlay",
						"new":    "added",
					},
				},
			},
			want: map[string]any{
				"level1": map[string]any{
					"level2": map[string]any{
						"level3": "overlay",
						"keep":   true,
						"new":    "added",
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeepMerge(tt.base, tt.overlay)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeepMerge_Deterministic(t *testing.T) {
	base := map[string]any{
		"replicas":  2,
		"resources": map[string]any{"cpu": "100m", "memory": "128Mi"},
		"hosts":     []any{"a", "b"},
	}
	overlay := map[string]any{
		"resources": map[string]any{"cpu": "500m"},
	}

	first := DeepMerge(base, overlay)
	second := DeepMerge(base, overlay)

	assert.Equal(t, first, second)
}

func TestDeepMerge_NoMutationOfOriginals(t *testing.T) {
	base := map[string]any{
		"key": "base_value",
		"nested": map[string]any{
			"inner": "base_inner",
		},
		"list": []any{"base1", "base2"},
	}
	overlay := map[string]any{
		"key": "overlay_value",
		"nested": map[string]any{
			"inner":   "overlay_inner",
			"new_key": "new_value",
		},
	}

	result := DeepMerge(base, overlay)

	// Modify the result
	result["key"] = "modified"
	result["nested"].(map[string]any)["inner"] = "modified"
	result["list"].([]any)[0] = "modified"

	// Originals are untouched
	assert.Equal(t, "base_value", base["key"])
	assert.Equal(t, "base_inner", base["nested"].(map[string]any)["inner"])
	assert.Equal(t, "base1", base["list"].([]any)[0])
	assert.Equal(t, "overlay_inner", overlay["nested"].(map[string]any)["inner"])
}

func TestDeepCopy(t *testing.T) {
	t.Run("no mutation of original map", func(t *testing.T) {
		original := map[string]any{
			"key": "value",
			"nested": map[string]any{
				"inner": "original",
			},
		}

		copied := deepCopy(original).(map[string]any)
		copied["key"] = "modified"
		copied["nested"].(map[string]any)["inner"] = "modified"

		assert.Equal(t, "value", original["key"])
		assert.Equal(t, "original", original["nested"].(map[string]any)["inner"])
	})

	t.Run("no mutation of original slice", func(t *testing.T) {
		original := []any{"a", "b", "c"}

		copied := deepCopy(original).([]any)
		copied[0] = "modified"

		assert.Equal(t, "a", original[0])
	})

	t.Run("string slice", func(t *testing.T) {
		original := []string{"a", "b"}

		copied := deepCopy(original).([]string)
		copied[0] = "modified"

		assert.Equal(t, "a", original[0])
	})

	t.Run("nil input", func(t *testing.T) {
		assert.Nil(t, deepCopy(nil))
	})

	t.Run("primitive passthrough", func(t *testing.T) {
		assert.Equal(t, 42, deepCopy(42))
		assert.Equal(t, "string", deepCopy("string"))
		assert.Equal(t, true, deepCopy(true))
	})
}
