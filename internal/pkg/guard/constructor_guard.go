// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries to detect instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard, so a zero-value struct
// that embeds it fails validation.
//
// Example:
//
//	type TakePartCommand struct {
//	    partID     kernel.UUID
//	    operatorID int64
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c TakePartCommand) Validate() error {
//	    return c.guard.Validate(ErrTakePartCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard was not created through NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
