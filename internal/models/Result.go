package models

// Result carries a value fetched from a remote source together with whether
// the fetch actually succeeded. An unavailable result holds the zero value.
type Result[T any] struct {
	Value T
	Ok    bool
}

func Available[T any](v T) Result[T] {
	return Result[T]{Value: v, Ok: true}
}

func Unavailable[T any]() Result[T] {
	return Result[T]{}
}

func (r Result[T]) OrZero() T {
	if !r.Ok {
		var zero T
		return zero
	}
	return r.Value
}
