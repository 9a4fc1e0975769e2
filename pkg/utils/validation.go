package utils

// CoalesceVal returns the first non-zero value among values; otherwise returns the zero value.
func CoalesceVal[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// MergeMaps merges b into a and returns a new map; does not mutate inputs.
func MergeMaps[K comparable, V any](a, b map[K]V) map[K]V {
	out := make(map[K]V, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
