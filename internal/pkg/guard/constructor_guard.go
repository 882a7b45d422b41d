// Package guard provides a defensive construction pattern for value objects
// and commands. Embedding a ConstructorGuard in a struct makes it possible to
// detect whether the struct was created through its designated constructor or
// left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied and the object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// The zero value is "not constructed" and fails validation, which prevents
// accidental use of zero-value domain objects.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly
// constructed. Call it inside constructor functions only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the owning object was created via its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
