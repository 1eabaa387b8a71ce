package commands

import (
	"context"
	"errors"
	"log/slog"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/tracking"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// PackingCodeMinter renders the packing code of a part that just reached PACKED.
type PackingCodeMinter interface {
	Handle(ctx context.Context, command MintPackingCodeCommand) (MintPackingCodeResult, error)
}

// CompletePartCommandHandler closes the operator's open task on a part and moves
// the part to its default successor.
//
// Example:
//
//	handler := NewCompletePartCommandHandler(uowFactory, clock, resolver, minter, logger)
//	cmd, _ := NewCompletePartCommand(partID, operatorID)
//	task, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrNoActiveTask):
//	    // the operator is not working this part
//	case errors.Is(err, errs.ErrInvalidState):
//	    // the part is in a state with no default successor; use a manual transition
//	case err != nil:
//	    return err
//	}
//	fmt.Println(task.StateAtCompletion())
type CompletePartCommandHandler struct {
	uowFactory AssignmentUoWFactory
	clock      kernel.Clock
	resolver   services.TransitionResolver
	minter     PackingCodeMinter
	logger     *slog.Logger
}

// NewCompletePartCommandHandler creates a handler for completing parts.
// minter may be nil, in which case packed parts are left for the packing-code job.
func NewCompletePartCommandHandler(
	uowFactory AssignmentUoWFactory,
	clock kernel.Clock,
	resolver services.TransitionResolver,
	minter PackingCodeMinter,
	logger *slog.Logger,
) CompletePartCommandHandler {
	return CompletePartCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		resolver:   resolver,
		minter:     minter,
		logger:     logger.With("component", "complete_part"),
	}
}

// Handle processes the complete part command and returns the closed tracking.
// The tracking close and the part move are committed together; the packing code
// is minted afterwards and a failure there does not undo the completion.
func (h CompletePartCommandHandler) Handle(ctx context.Context, command CompletePartCommand) (*tracking.TaskTracking, error) {
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
	trackingRepo := uow.TaskTrackingRepository()

	p, err := partRepo.GetForUpdate(ctx, command.PartID())
	if err != nil {
		return nil, err
	}

	task, err := activeTaskOf(ctx, trackingRepo, p.ID(), command.OperatorID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	res, err := h.resolver.Resolve(task.StateAtStart(), task.StartTime(), now)
	if err != nil {
		return nil, err
	}

	if res.From == part.Painted && !res.CureWindowElapsed {
		h.logger.WarnContext(ctx, "Packing before paint cure window elapsed",
			"part_id", p.ID().String(),
			"tracking_id", task.ID(),
			"cure_window", services.CureWindow.String())
	}

	if err = task.Complete(res.Next, now); err != nil {
		return nil, err
	}
	if err = p.MoveTo(res.Next); err != nil {
		return nil, err
	}

	if err = trackingRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	if err = partRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if res.Next == part.Packed {
		mintAfterPacking(ctx, h.minter, h.logger, p.ID())
	}

	return task, nil
}

// activeTaskOf returns the open tracking of partID if it belongs to operatorID.
func activeTaskOf(
	ctx context.Context,
	repo ports.TaskTrackingRepository,
	partID kernel.UUID,
	operatorID int64,
) (*tracking.TaskTracking, error) {
	task, err := repo.GetActiveByPart(ctx, partID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewNoActiveTaskError(partID.String(), operatorID)
	}
	if err != nil {
		return nil, err
	}
	if task.OperatorID() != operatorID {
		return nil, errs.NewNoActiveTaskError(partID.String(), operatorID)
	}
	return task, nil
}

func mintAfterPacking(ctx context.Context, minter PackingCodeMinter, logger *slog.Logger, partID kernel.UUID) {
	if minter == nil {
		return
	}

	cmd, err := NewMintPackingCodeCommand(partID)
	if err != nil {
		logger.ErrorContext(ctx, "Packing code command rejected", "part_id", partID.String(), "error", err)
		return
	}

	if _, err = minter.Handle(ctx, cmd); err != nil {
		logger.ErrorContext(ctx, "Packing code mint failed, left for retry",
			"part_id", partID.String(),
			"error", err)
	}
}
