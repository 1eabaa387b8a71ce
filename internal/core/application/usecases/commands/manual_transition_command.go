package commands

import (
	"errors"
	"strings"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrManualTransitionCommandIsNotConstructed = errors.New(
	"ManualTransitionCommand must be created via NewManualTransitionCommand constructor",
)

// ManualTransitionCommand closes an operator's task on a part with an explicit
// target state and a written outcome. Any state of the catalog is accepted.
//
// Example:
//
//	cmd, err := NewManualTransitionCommand(partID, operatorID, part.RepairNeeded, "dent found")
//	if errors.Is(err, errs.ErrDescriptionRequired) {
//	    // ask the operator for a reason
//	}
type ManualTransitionCommand struct { //nolint:recvcheck //using for validation
	partID      kernel.UUID
	operatorID  int64
	targetState part.State
	description string

	guard guard.ConstructorGuard
}

// NewManualTransitionCommand creates a manual transition command.
// A blank description is rejected with a DescriptionRequiredError before any
// storage is touched.
func NewManualTransitionCommand(
	partID kernel.UUID,
	operatorID int64,
	targetState part.State,
	description string,
) (ManualTransitionCommand, error) {
	cmd := ManualTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDescription(description),
		partID.Validate(),
		validateOperatorID(operatorID),
		targetState.Validate(),
	); err != nil {
		return ManualTransitionCommand{}, err
	}

	cmd.partID = partID
	cmd.operatorID = operatorID
	cmd.targetState = targetState
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ManualTransitionCommand) Validate() error {
	return c.guard.Validate(ErrManualTransitionCommandIsNotConstructed)
}

func (c ManualTransitionCommand) PartID() kernel.UUID     { return c.partID }
func (c ManualTransitionCommand) OperatorID() int64       { return c.operatorID }
func (c ManualTransitionCommand) TargetState() part.State { return c.targetState }
func (c ManualTransitionCommand) Description() string     { return c.description }

func (c *ManualTransitionCommand) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewDescriptionRequiredError("outcomeDescription")
	}
	c.description = description
	return nil
}
