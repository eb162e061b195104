package domain

// Coalesce returns the first non-zero value, so an empty type or status from
// input falls back to the given default.
func Coalesce[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// ValueOr dereferences p, or returns fallback when p is nil.
func ValueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// FirstPositive returns the first estimate greater than zero, or 0. A zero
// estimate counts as missing.
func FirstPositive(ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil && *p > 0 {
			return *p
		}
	}
	return 0
}
