package commands

import (
	"context"
	"log/slog"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/tracking"
	"shopfloor/internal/core/domain/services"
)

// ManualTransitionCommandHandler closes the operator's open task on a part with
// the requested state, bypassing the default path.
type ManualTransitionCommandHandler struct {
	uowFactory AssignmentUoWFactory
	clock      kernel.Clock
	resolver   services.TransitionResolver
	minter     PackingCodeMinter
	logger     *slog.Logger
}

// NewManualTransitionCommandHandler creates a handler for manual transitions.
func NewManualTransitionCommandHandler(
	uowFactory AssignmentUoWFactory,
	clock kernel.Clock,
	resolver services.TransitionResolver,
	minter PackingCodeMinter,
	logger *slog.Logger,
) ManualTransitionCommandHandler {
	return ManualTransitionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		resolver:   resolver,
		minter:     minter,
		logger:     logger.With("component", "manual_transition"),
	}
}

// Handle processes the manual transition command and returns the closed tracking.
func (h ManualTransitionCommandHandler) Handle(
	ctx context.Context,
	command ManualTransitionCommand,
) (*tracking.TaskTracking, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	target, err := h.resolver.ResolveManual(command.TargetState())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = task.CloseManually(target, h.clock.Now(), command.Description()); err != nil {
		return nil, err
	}
	if err = p.MoveTo(target); err != nil {
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

	h.logger.InfoContext(ctx, "Manual transition applied",
		"part_id", p.ID().String(),
		"operator_id", command.OperatorID(),
		"from", task.StateAtStart().String(),
		"to", target.String())

	if target == part.Packed && !p.HasPackingCode() {
		mintAfterPacking(ctx, h.minter, h.logger, p.ID())
	}

	return task, nil
}
