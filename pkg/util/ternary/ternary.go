package ternary

// ternary function
func Ternary[T any](cond bool, val1 T, val2 T) T {
	if cond {
		return val1
	}
	return val2
}

// Default returns val unless it is the zero value, fallback otherwise.
func Default[T comparable](val T, fallback T) T {
	var zero T
	return Ternary(val != zero, val, fallback)
}
