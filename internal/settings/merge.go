package settings

// DeepMerge recursively merges overlay into base and returns a new map.
// Merge semantics:
//   - Nested mappings merge key by key, so overriding one nested field
//     does not erase its siblings
//   - Scalars and sequences in the overlay replace the base value
//     wholesale (no list concatenation)
//   - A shape mismatch (e.g. a scalar overriding a mapping) is not an
//     error: the overlay value wins outright
//
// Neither input is mutated; the result shares no structure with either.
func DeepMerge(base, overlay map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		result[k] = deepCopy(v)
	}

	for key, overlayValue := range overlay {
		if baseValue, exists := result[key]; exists {
			baseMap, baseIsMap := baseValue.(map[string]any)
			overlayMap, overlayIsMap := overlayValue.(map[string]any)
			if baseIsMap && overlayIsMap {
				result[key] = DeepMerge(baseMap, overlayMap)
				continue
			}
		}

		result[key] = deepCopy(overlayValue)
	}

	return result
}

// deepCopy creates a deep copy of any value.
func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for k, val := range v {
			result[k] = deepCopy(val)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = deepCopy(val)
		}
		return result
	case []string:
		result := make([]string, len(v))
		copy(result, v)
		return result
	default:
		// Primitive types are immutable, return as-is
		return value
	}
}
