package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"
)

// ScanDeliveryCodeCommandHandler confirms a packed part as ready for delivery.
// It is the only way a part becomes ready for delivery, and it does so once.
type ScanDeliveryCodeCommandHandler struct {
	uowFactory PartUoWFactory
}

// NewScanDeliveryCodeCommandHandler creates a handler for delivery scans.
func NewScanDeliveryCodeCommandHandler(uowFactory PartUoWFactory) ScanDeliveryCodeCommandHandler {
	return ScanDeliveryCodeCommandHandler{uowFactory: uowFactory}
}

// Handle processes the scan and returns the confirmed part.
//
// Errors:
//   - ObjectNotFoundError when the part does not exist
//   - InvalidPayloadError when the code names a different project than the part's
//   - AlreadyConfirmedError on a replayed scan
//   - InvalidStateError when the part is not packed
func (h ScanDeliveryCodeCommandHandler) Handle(ctx context.Context, command ScanDeliveryCodeCommand) (*part.Part, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	code := command.Code()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partRepo := uow.PartRepository()

	p, err := partRepo.GetForUpdate(ctx, code.PartID())
	if err != nil {
		return nil, err
	}

	if p.ProjectID() != code.ProjectID() {
		return nil, errs.NewInvalidPayloadError(
			fmt.Sprintf("part %s does not belong to project %d", p.ID(), code.ProjectID()),
		)
	}

	if err = p.ConfirmDelivery(); err != nil {
		return nil, err
	}

	if err = partRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
