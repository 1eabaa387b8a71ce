// Package operator contains the Operator entity: a shop-floor worker who may hold
// at most one active task at a time. Identity and credentials live elsewhere; the
// engine only needs the id, a display name and whether the operator may take work.
package operator

import (
	"errors"
	"fmt"
	"strings"

	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

// ErrOperatorIsNotConstructed is returned when an Operator bypassed its constructors.
var ErrOperatorIsNotConstructed = errors.New("Operator must be created via NewOperator or RestoreOperator constructor")

// Operator is a worker known to the engine.
type Operator struct {
	id          int64
	displayName string
	active      bool
	guard       guard.ConstructorGuard
}

// NewOperator creates an unsaved, active operator.
func NewOperator(displayName string) (*Operator, error) {
	o := &Operator{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}
	if err := o.setDisplayName(displayName); err != nil {
		return nil, err
	}
	return o, nil
}

// RestoreOperator rebuilds an operator from persistence.
func RestoreOperator(id int64, displayName string, active bool) (*Operator, error) {
	o := &Operator{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	var idErr error
	if id <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive id", id))
	}
	if err := errors.Join(idErr, o.setDisplayName(displayName)); err != nil {
		return nil, err
	}
	o.id = id
	return o, nil
}

// Validate ensures the operator was properly constructed.
func (o *Operator) Validate() error {
	if o == nil {
		return ErrOperatorIsNotConstructed
	}
	return o.guard.Validate(ErrOperatorIsNotConstructed)
}

// ID returns the operator id, 0 before the first save.
func (o *Operator) ID() int64 {
	return o.id
}

// DisplayName returns the name shown on boards and reports.
func (o *Operator) DisplayName() string {
	return o.displayName
}

// IsActive reports whether the operator may take work.
func (o *Operator) IsActive() bool {
	return o.active
}

// AssignID stores the id generated by the store. It can be called once.
func (o *Operator) AssignID(id int64) error {
	if o.id != 0 {
		return errs.NewInvalidStateError("operator", fmt.Sprintf("id %d", o.id), errors.New("id already assigned"))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive id", id))
	}
	o.id = id
	return nil
}

// Deactivate prevents the operator from taking new work.
func (o *Operator) Deactivate() {
	o.active = false
}

// Activate allows the operator to take work again.
func (o *Operator) Activate() {
	o.active = true
}

// EnsureCanTakeWork returns an InvalidStateError for a deactivated operator.
func (o *Operator) EnsureCanTakeWork() error {
	if !o.active {
		return errs.NewInvalidStateError("operator", "inactive", fmt.Errorf("operator %d cannot take work", o.id))
	}
	return nil
}

func (o *Operator) setDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	o.displayName = name
	return nil
}
