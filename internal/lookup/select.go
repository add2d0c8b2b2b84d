package lookup

// Select returns candidates[index], failing with CodeIndexOutOfRange when
// index is negative or past the end. kind labels the error.
func Select[T any](kind string, candidates []T, index int) (T, error) {
	var zero T
	if index < 0 || index >= len(candidates) {
		return zero, indexOutOfRange(kind, index, len(candidates))
	}
	return candidates[index], nil
}
