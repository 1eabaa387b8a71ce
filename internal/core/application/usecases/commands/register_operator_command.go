package commands

import (
	"errors"
	"strings"

	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrRegisterOperatorCommandIsNotConstructed = errors.New(
	"RegisterOperatorCommand must be created via NewRegisterOperatorCommand constructor",
)

// RegisterOperatorCommand adds an operator to the engine's lookup.
type RegisterOperatorCommand struct { //nolint:recvcheck //using for validation
	displayName string
	guard       guard.ConstructorGuard
}

func NewRegisterOperatorCommand(displayName string) (RegisterOperatorCommand, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return RegisterOperatorCommand{}, errs.NewValueIsRequiredError("displayName")
	}
	return RegisterOperatorCommand{displayName: displayName, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterOperatorCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOperatorCommandIsNotConstructed)
}

func (c RegisterOperatorCommand) DisplayName() string {
	return c.displayName
}
