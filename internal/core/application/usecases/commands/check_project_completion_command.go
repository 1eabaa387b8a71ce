package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrCheckProjectCompletionCommandIsNotConstructed = errors.New(
	"CheckProjectCompletionCommand must be created via NewCheckProjectCompletionCommand constructor",
)

// CheckProjectCompletionCommand asks whether a project's in-transit parts can be
// marked installed.
type CheckProjectCompletionCommand struct { //nolint:recvcheck //using for validation
	projectID int64
	guard     guard.ConstructorGuard
}

// NewCheckProjectCompletionCommand creates a completion check for projectID.
func NewCheckProjectCompletionCommand(projectID int64) (CheckProjectCompletionCommand, error) {
	if projectID <= 0 {
		return CheckProjectCompletionCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"projectID", fmt.Errorf("%d is not a positive id", projectID),
		)
	}
	return CheckProjectCompletionCommand{projectID: projectID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckProjectCompletionCommand) Validate() error {
	return c.guard.Validate(ErrCheckProjectCompletionCommandIsNotConstructed)
}

func (c CheckProjectCompletionCommand) ProjectID() int64 {
	return c.projectID
}

// ProjectCompletionResult reports what a completion check saw and did.
type ProjectCompletionResult struct {
	ProjectID int64
	InTransit int
	Ready     int
	Advanced  bool
}
