package preproc

// Outcome is the result of one best-effort step. When the step could not
// complete, Value holds its safe default, Fallback is set, and Err records
// the absorbed cause.
type Outcome[T any] struct {
	Value    T
	Fallback bool
	Err      error
}

// Done returns a successful Outcome.
func Done[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Fallback returns an Outcome carrying a substituted default.
func Fallback[T any](v T, err error) Outcome[T] {
	return Outcome[T]{Value: v, Fallback: true, Err: err}
}
