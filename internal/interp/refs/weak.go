// Package refs wraps the standard library's weak.Pointer so the evaluator
// can model ECMAScript's non-owning back-edges (prototype/constructor links,
// closure scope capture) as genuinely weak references, matching spec.md §9's
// "Cyclic object graphs" design note even though Go's GC makes the
// strong/weak distinction moot for memory safety on its own.
package refs

import "weak"

// Weak is a non-owning reference to a T. A promotion attempt that finds the
// target already collected degrades to "target is gone" rather than
// panicking or resurrecting it.
type Weak[T any] struct {
	ptr weak.Pointer[T]
}

// NewWeak captures a weak reference to target. target may be nil, producing
// a Weak that always fails to resolve.
func NewWeak[T any](target *T) Weak[T] {
	if target == nil {
		return Weak[T]{}
	}
	return Weak[T]{ptr: weak.Make(target)}
}

// Get attempts to promote the weak reference to a strong pointer. The second
// return value is false if the target has been collected (or the Weak was
// never set).
func (w Weak[T]) Get() (*T, bool) {
	v := w.ptr.Value()
	return v, v != nil
}

// IsZero reports whether this Weak was never assigned a target.
func (w Weak[T]) IsZero() bool {
	return w.ptr == weak.Pointer[T]{}
}
