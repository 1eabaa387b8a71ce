package commands

import (
	"context"
	"errors"
	"fmt"
)

// RetryPackingCodesCommandHandler lists packed parts without a packing code and
// mints each one in its own transaction.
type RetryPackingCodesCommandHandler struct {
	uowFactory PartUoWFactory
	minter     PackingCodeMinter
}

// NewRetryPackingCodesCommandHandler creates a retry handler that mints through minter.
func NewRetryPackingCodesCommandHandler(uowFactory PartUoWFactory, minter PackingCodeMinter) RetryPackingCodesCommandHandler {
	return RetryPackingCodesCommandHandler{uowFactory: uowFactory, minter: minter}
}

// Handle returns how many codes were minted. Failures of single parts are joined
// into the returned error and do not stop the batch.
func (h RetryPackingCodesCommandHandler) Handle(ctx context.Context, command RetryPackingCodesCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	parts, err := uow.PartRepository().GetPackedWithoutCode(ctx, command.BatchSize())
	_ = uow.Rollback(ctx)
	if err != nil {
		return 0, err
	}

	var (
		minted  int
		failure []error
	)
	for _, p := range parts {
		cmd, err := NewMintPackingCodeCommand(p.ID())
		if err != nil {
			failure = append(failure, err)
			continue
		}
		if _, err = h.minter.Handle(ctx, cmd); err != nil {
			failure = append(failure, fmt.Errorf("part %s: %w", p.ID(), err))
			continue
		}
		minted++
	}

	return minted, errors.Join(failure...)
}
