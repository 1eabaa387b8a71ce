package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
)

// ReceivePartCommandHandler stamps the reception time of a part.
type ReceivePartCommandHandler struct {
	uowFactory PartUoWFactory
	clock      kernel.Clock
}

func NewReceivePartCommandHandler(uowFactory PartUoWFactory, clock kernel.Clock) ReceivePartCommandHandler {
	return ReceivePartCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle processes the receive command. Receiving again overwrites the timestamp.
func (h ReceivePartCommandHandler) Handle(ctx context.Context, command ReceivePartCommand) (*part.Part, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partRepo := uow.PartRepository()

	p, err := partRepo.GetForUpdate(ctx, command.PartID())
	if err != nil {
		return nil, err
	}

	if err = p.MarkReceived(h.clock.Now()); err != nil {
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
