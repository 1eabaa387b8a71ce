package commands

import (
	"errors"

	"shopfloor/internal/pkg/guard"
)

var ErrSetOperatorActiveCommandIsNotConstructed = errors.New(
	"SetOperatorActiveCommand must be created via NewSetOperatorActiveCommand constructor",
)

// SetOperatorActiveCommand activates or deactivates an operator. A deactivated
// operator keeps any open task but cannot take new ones.
type SetOperatorActiveCommand struct { //nolint:recvcheck //using for validation
	operatorID int64
	active     bool
	guard      guard.ConstructorGuard
}

func NewSetOperatorActiveCommand(operatorID int64, active bool) (SetOperatorActiveCommand, error) {
	if err := validateOperatorID(operatorID); err != nil {
		return SetOperatorActiveCommand{}, err
	}
	return SetOperatorActiveCommand{operatorID: operatorID, active: active, guard: guard.NewConstructorGuard()}, nil
}

func (c SetOperatorActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetOperatorActiveCommandIsNotConstructed)
}

func (c SetOperatorActiveCommand) OperatorID() int64 { return c.operatorID }
func (c SetOperatorActiveCommand) Active() bool      { return c.active }
