package commands

import (
	"errors"

	"shopfloor/internal/pkg/guard"
)

var ErrSweepDeliveriesCommandIsNotConstructed = errors.New(
	"SweepDeliveriesCommand must be created via NewSweepDeliveriesCommand constructor",
)

// SweepDeliveriesCommand runs the completion check for every project that has
// parts in transit to site.
type SweepDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

func NewSweepDeliveriesCommand() SweepDeliveriesCommand {
	return SweepDeliveriesCommand{guard: guard.NewConstructorGuard()}
}

func (c SweepDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrSweepDeliveriesCommandIsNotConstructed)
}
