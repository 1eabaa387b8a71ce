package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrReceivePartCommandIsNotConstructed = errors.New(
	"ReceivePartCommand must be created via NewReceivePartCommand constructor",
)

// ReceivePartCommand records that a part physically arrived on the shop floor.
type ReceivePartCommand struct { //nolint:recvcheck //using for validation
	partID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewReceivePartCommand(partID kernel.UUID) (ReceivePartCommand, error) {
	if err := partID.Validate(); err != nil {
		return ReceivePartCommand{}, err
	}
	return ReceivePartCommand{partID: partID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReceivePartCommand) Validate() error {
	return c.guard.Validate(ErrReceivePartCommandIsNotConstructed)
}

func (c ReceivePartCommand) PartID() kernel.UUID {
	return c.partID
}
