// Package answers provides the value model for form answers and the
// merge engine that layers field overrides on top of a base submission.
//
// Answer values are the JSON union as decoded by encoding/json: nil,
// bool, float64, string, []interface{}, and map[string]interface{}.
// Values are trees; cycles are never produced by the decoder and are
// not supported.
package answers

// Map holds answer values keyed by field key.
type Map map[string]interface{}

// Clone returns a deep copy of m. Baseline snapshots are cloned so a
// live edit buffer can never alias them.
func Clone(m Map) Map {
	if m == nil {
		return Map{}
	}
	result := make(Map, len(m))
	for k, v := range m {
		result[k] = cloneValue(v)
	}
	return result
}

// CloneValue returns a deep copy of a single answer value.
func CloneValue(v interface{}) interface{} {
	return cloneValue(v)
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(val))
		for k, elem := range val {
			result[k] = cloneValue(elem)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(val))
		for i, elem := range val {
			result[i] = cloneValue(elem)
		}
		return result
	default:
		// Scalars (nil, bool, float64, string) are immutable
		return val
	}
}

// Equal reports whether two answer values are structurally equal.
//
// The original editor compared non-primitive values by reference, so
// re-assigning an identical array was flagged as a change. That is a
// JavaScript artifact with no Go analogue; this implementation compares
// the full tree instead.
func Equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, elem := range av {
			other, exists := bv[k]
			if !exists || !Equal(elem, other) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, elem := range av {
			if !Equal(elem, bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
