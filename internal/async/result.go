package async

// Result holds either a value or an *Error, never both.
type Result[T any] struct {
	value T
	err   *Error
}

func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure builds a failed Result. A nil err still yields a failure.
func Failure[T any](err error) Result[T] {
	e := AsError(err)
	if e == nil {
		e = NewTransportError(nil)
	}
	return Result[T]{err: e}
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// Value returns the value and true on success, the zero value and false otherwise.
func (r Result[T]) Value() (T, bool) {
	if r.err != nil {
		var zero T
		return zero, false
	}
	return r.value, true
}

func (r Result[T]) Err() *Error {
	return r.err
}

// Get unpacks the result into Go's usual (value, error) pair.
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}
