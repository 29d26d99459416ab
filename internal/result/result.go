// Package result provides the tri-state outcome type used by every
// fallible operation in the client: Idle (nothing has run yet),
// Success (data available), or Failure (typed error).
//
// Exactly one variant is active at a time. The zero value is Idle,
// which makes it the natural initial value for screen state.
package result

// State identifies the active variant of a Result.
type State int

const (
	StateIdle State = iota
	StateSuccess
	StateFailure
)

// Result is a tri-state outcome carrying either a success payload or an
// error, or neither before any operation has run.
type Result[T any] struct {
	state State
	data  T
	err   error
}

// Idle returns the initial no-operation-has-run value.
func Idle[T any]() Result[T] {
	return Result[T]{}
}

// Ok returns a success result wrapping v.
func Ok[T any](v T) Result[T] {
	return Result[T]{state: StateSuccess, data: v}
}

// Err returns a failure result wrapping err. A nil err is coerced to a
// success-free idle value so a failure always carries an error.
func Err[T any](err error) Result[T] {
	if err == nil {
		return Result[T]{}
	}
	return Result[T]{state: StateFailure, err: err}
}

// State returns the active variant.
func (r Result[T]) State() State { return r.state }

// IsIdle reports whether no operation has produced this result yet.
func (r Result[T]) IsIdle() bool { return r.state == StateIdle }

// IsSuccess reports whether the result holds data.
func (r Result[T]) IsSuccess() bool { return r.state == StateSuccess }

// IsFailure reports whether the result holds an error.
func (r Result[T]) IsFailure() bool { return r.state == StateFailure }

// Value returns the success payload and whether one is present.
func (r Result[T]) Value() (T, bool) {
	return r.data, r.state == StateSuccess
}

// MustValue returns the success payload, or the zero value for the
// other variants. Intended for display code that has already checked
// IsSuccess.
func (r Result[T]) MustValue() T { return r.data }

// Err returns the failure error, nil for the other variants.
func (r Result[T]) Err() error { return r.err }

// Unit is the payload for operations that succeed without data.
type Unit = struct{}

// Empty is the result of an operation with no success payload.
type Empty = Result[Unit]

// Done returns a successful Empty result.
func Done() Empty { return Ok(Unit{}) }
