package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrDeletePartCommandIsNotConstructed = errors.New(
	"DeletePartCommand must be created via NewDeletePartCommand constructor",
)

// DeletePartCommand removes a part, its trackings and its packing image.
type DeletePartCommand struct { //nolint:recvcheck //using for validation
	partID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewDeletePartCommand(partID kernel.UUID) (DeletePartCommand, error) {
	if err := partID.Validate(); err != nil {
		return DeletePartCommand{}, err
	}
	return DeletePartCommand{partID: partID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeletePartCommand) Validate() error {
	return c.guard.Validate(ErrDeletePartCommandIsNotConstructed)
}

func (c DeletePartCommand) PartID() kernel.UUID {
	return c.partID
}
