package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrDeleteTaskTrackingCommandIsNotConstructed = errors.New(
	"DeleteTaskTrackingCommand must be created via NewDeleteTaskTrackingCommand constructor",
)

// DeleteTaskTrackingCommand removes a single tracking row. Deleting an open
// tracking releases both the part and the operator.
type DeleteTaskTrackingCommand struct { //nolint:recvcheck //using for validation
	trackingID int64
	guard      guard.ConstructorGuard
}

func NewDeleteTaskTrackingCommand(trackingID int64) (DeleteTaskTrackingCommand, error) {
	if trackingID <= 0 {
		return DeleteTaskTrackingCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingID", fmt.Errorf("%d is not a positive id", trackingID),
		)
	}
	return DeleteTaskTrackingCommand{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteTaskTrackingCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTaskTrackingCommandIsNotConstructed)
}

func (c DeleteTaskTrackingCommand) TrackingID() int64 {
	return c.trackingID
}
