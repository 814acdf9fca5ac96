// Package result provides a tagged success/failure value for operations
// whose failure is an expected outcome the caller must branch on.
package result

type Result[T any] struct {
	data T
	err  error
	ok   bool
}

func Ok[T any](data T) Result[T] {
	return Result[T]{data: data, ok: true}
}

func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// OK reports whether the result holds data. Check it before calling Data.
func (r Result[T]) OK() bool { return r.ok }

// Data returns the payload, or the zero value for a failed result.
func (r Result[T]) Data() T { return r.data }

func (r Result[T]) Err() error { return r.err }

func (r Result[T]) Unwrap() (T, error) { return r.data, r.err }
