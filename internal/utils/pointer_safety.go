package utils

// Ptr returns a pointer to v, for building optional arguments inline.
func Ptr[T any](v T) *T {
	return &v
}
