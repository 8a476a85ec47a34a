package clientbook

// Optional holds a value that may be absent.
//
// The zero Optional is absent. Absent is distinct from a present zero value:
// a client with no dividends reported is not a client with zero dividends.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// Present reports whether the value is present.
func (o Optional[T]) Present() bool { return o.ok }

// Or returns the value if present, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}
