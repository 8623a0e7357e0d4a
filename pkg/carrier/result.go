package carrier

// Result is the return contract for every fallible core operation: either a
// populated value or a normalized error, never both, and never a raw panic
// crossing a component boundary.
type Result[T any] struct {
	OK    bool
	Value T
	Err   *Error
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{OK: true, Value: value}
}

// Fail wraps a normalized error.
func Fail[T any](err *Error) Result[T] {
	return Result[T]{Err: err}
}

// Unwrap returns the value and error as an ordinary Go pair.
func (r Result[T]) Unwrap() (T, *Error) {
	return r.Value, r.Err
}
