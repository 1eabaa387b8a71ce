package commands

import (
	"context"
	"log/slog"

	"shopfloor/internal/core/domain/model/delivery"
	"shopfloor/internal/core/ports"
)

// DeletePartCommandHandler deletes a part. Its trackings go with it through the
// schema; the packing image is removed after the commit.
type DeletePartCommandHandler struct {
	uowFactory PartUoWFactory
	renderer   ports.CodeRenderer
	logger     *slog.Logger
}

// NewDeletePartCommandHandler creates a delete handler.
func NewDeletePartCommandHandler(
	uowFactory PartUoWFactory,
	renderer ports.CodeRenderer,
	logger *slog.Logger,
) DeletePartCommandHandler {
	return DeletePartCommandHandler{
		uowFactory: uowFactory,
		renderer:   renderer,
		logger:     logger.With("component", "delete_part"),
	}
}

// Handle deletes the part. An unknown part is an ObjectNotFoundError. Failing to
// remove the image is logged and does not fail the command.
func (h DeletePartCommandHandler) Handle(ctx context.Context, command DeletePartCommand) error {
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

	partRepo := uow.PartRepository()

	p, err := partRepo.GetForUpdate(ctx, command.PartID())
	if err != nil {
		return err
	}

	if err = partRepo.Delete(ctx, p.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if p.HasPackingCode() {
		if err = h.renderer.Delete(ctx, delivery.FileNameFor(p.ID())); err != nil {
			h.logger.WarnContext(ctx, "Packing code image not removed",
				"part_id", p.ID().String(),
				"path", p.PackingCodePath(),
				"error", err)
		}
	}

	return nil
}
