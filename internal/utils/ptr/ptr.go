// Package ptr has helpers for optional values held as pointers, such as
// a mapping's source units.
package ptr

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NonEmpty returns a pointer to s, or nil when s is empty. The service
// stores an absent unit as null rather than "".
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
