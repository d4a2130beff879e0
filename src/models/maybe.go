package models

import "errors"

// ErrAbsent is the reason carried by a Maybe built without an explicit one.
var ErrAbsent = errors.New("report absent")

// -----------------------------------------------------------------------------

// Maybe holds an upstream report that may be missing. An absent value keeps the
// reason it is missing so callers can log it without branching on it.
type Maybe[T any] struct {
	value   T
	present bool
	reason  error
}

// -----------------------------------------------------------------------------

// Some wraps a report that was fetched and decoded.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, present: true}
}

// -----------------------------------------------------------------------------

// None marks a report as absent.
func None[T any](reason error) Maybe[T] {
	if reason == nil {
		reason = ErrAbsent
	}
	return Maybe[T]{reason: reason}
}

// -----------------------------------------------------------------------------

func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.present
}

// -----------------------------------------------------------------------------

func (m Maybe[T]) Present() bool {
	return m.present
}

// -----------------------------------------------------------------------------

// Reason is nil for a present value. The zero Maybe is absent with ErrAbsent.
func (m Maybe[T]) Reason() error {
	if m.present {
		return nil
	}
	if m.reason == nil {
		return ErrAbsent
	}
	return m.reason
}
