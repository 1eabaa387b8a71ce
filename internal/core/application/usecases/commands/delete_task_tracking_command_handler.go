package commands

import (
	"context"
)

type DeleteTaskTrackingCommandHandler struct {
	uowFactory TrackingUoWFactory
}

func NewDeleteTaskTrackingCommandHandler(uowFactory TrackingUoWFactory) DeleteTaskTrackingCommandHandler {
	return DeleteTaskTrackingCommandHandler{uowFactory: uowFactory}
}

func (h DeleteTaskTrackingCommandHandler) Handle(ctx context.Context, command DeleteTaskTrackingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.TaskTrackingRepository().Delete(ctx, command.TrackingID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
