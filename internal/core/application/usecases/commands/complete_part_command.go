package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrCompletePartCommandIsNotConstructed = errors.New(
	"CompletePartCommand must be created via NewCompletePartCommand constructor",
)

// CompletePartCommand represents an operator finishing the work on a part along
// the default path.
type CompletePartCommand struct { //nolint:recvcheck //using for validation
	partID     kernel.UUID
	operatorID int64

	guard guard.ConstructorGuard
}

// NewCompletePartCommand creates a command for operatorID to complete partID.
func NewCompletePartCommand(partID kernel.UUID, operatorID int64) (CompletePartCommand, error) {
	cmd := CompletePartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		partID.Validate(),
		validateOperatorID(operatorID),
	); err != nil {
		return CompletePartCommand{}, err
	}

	cmd.partID = partID
	cmd.operatorID = operatorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePartCommand) Validate() error {
	return c.guard.Validate(ErrCompletePartCommandIsNotConstructed)
}

func (c CompletePartCommand) PartID() kernel.UUID {
	return c.partID
}

func (c CompletePartCommand) OperatorID() int64 {
	return c.operatorID
}
