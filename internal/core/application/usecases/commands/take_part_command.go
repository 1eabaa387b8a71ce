package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrTakePartCommandIsNotConstructed = errors.New(
	"TakePartCommand must be created via NewTakePartCommand constructor",
)

// TakePartCommand represents an operator starting work on a part.
//
// Example:
//
//	cmd, err := NewTakePartCommand(partID, operatorID)
//	if err != nil {
//	    return err
//	}
//	task, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrAlreadyAssigned) {
//	    // someone else is working the part
//	}
type TakePartCommand struct { //nolint:recvcheck //using for validation
	partID     kernel.UUID
	operatorID int64

	guard guard.ConstructorGuard
}

// NewTakePartCommand creates a command for operatorID to take partID.
func NewTakePartCommand(partID kernel.UUID, operatorID int64) (TakePartCommand, error) {
	cmd := TakePartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartID(partID),
		cmd.setOperatorID(operatorID),
	); err != nil {
		return TakePartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TakePartCommand) Validate() error {
	return c.guard.Validate(ErrTakePartCommandIsNotConstructed)
}

// PartID returns the part to take.
func (c TakePartCommand) PartID() kernel.UUID {
	return c.partID
}

// OperatorID returns the operator taking the part.
func (c TakePartCommand) OperatorID() int64 {
	return c.operatorID
}

func (c *TakePartCommand) setPartID(partID kernel.UUID) error {
	if err := partID.Validate(); err != nil {
		return err
	}
	c.partID = partID
	return nil
}

func (c *TakePartCommand) setOperatorID(operatorID int64) error {
	if err := validateOperatorID(operatorID); err != nil {
		return err
	}
	c.operatorID = operatorID
	return nil
}

func validateOperatorID(operatorID int64) error {
	if operatorID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("operatorID", fmt.Errorf("%d is not a positive id", operatorID))
	}
	return nil
}
