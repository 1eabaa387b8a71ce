package commands

import (
	"errors"

	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

const DefaultRetryBatchSize = 50

var ErrRetryPackingCodesCommandIsNotConstructed = errors.New(
	"RetryPackingCodesCommand must be created via NewRetryPackingCodesCommand constructor",
)

// RetryPackingCodesCommand mints codes for packed parts whose earlier mint failed.
type RetryPackingCodesCommand struct { //nolint:recvcheck //using for validation
	batchSize int
	guard     guard.ConstructorGuard
}

// NewRetryPackingCodesCommand creates a retry over at most batchSize parts.
func NewRetryPackingCodesCommand(batchSize int) (RetryPackingCodesCommand, error) {
	if batchSize <= 0 {
		return RetryPackingCodesCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return RetryPackingCodesCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RetryPackingCodesCommand) Validate() error {
	return c.guard.Validate(ErrRetryPackingCodesCommandIsNotConstructed)
}

func (c RetryPackingCodesCommand) BatchSize() int {
	return c.batchSize
}
