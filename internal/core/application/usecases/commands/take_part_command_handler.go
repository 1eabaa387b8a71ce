package commands

import (
	"context"
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/tracking"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/pkg/errs"
)

// TakePartCommandHandler opens a task tracking for an operator on a part.
//
// The part row and then the operator row are locked before the open trackings are
// read, so racing takes on one part, or by one operator, are serialized: exactly
// one wins and the others get AlreadyAssigned or OperatorBusy.
type TakePartCommandHandler struct {
	uowFactory AssignmentUoWFactory
	clock      kernel.Clock
	policy     services.AssignmentPolicy
}

// NewTakePartCommandHandler creates a handler for taking parts.
func NewTakePartCommandHandler(uowFactory AssignmentUoWFactory, clock kernel.Clock) TakePartCommandHandler {
	return TakePartCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     services.NewAssignmentPolicy(),
	}
}

// Handle processes the take part command and returns the new open tracking.
func (h TakePartCommandHandler) Handle(ctx context.Context, command TakePartCommand) (*tracking.TaskTracking, error) {
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
	operatorRepo := uow.OperatorRepository()
	trackingRepo := uow.TaskTrackingRepository()

	p, err := partRepo.GetForUpdate(ctx, command.PartID())
	if err != nil {
		return nil, err
	}

	o, err := operatorRepo.GetForUpdate(ctx, command.OperatorID())
	if err != nil {
		return nil, err
	}

	partTask, err := optional(trackingRepo.GetActiveByPart(ctx, p.ID()))
	if err != nil {
		return nil, err
	}

	operatorTask, err := optional(trackingRepo.GetActiveByOperator(ctx, o.ID()))
	if err != nil {
		return nil, err
	}

	task, err := h.policy.Assign(p, o, partTask, operatorTask, h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = trackingRepo.Add(ctx, task); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return task, nil
}

// optional turns a not-found lookup into a nil result.
func optional(t *tracking.TaskTracking, err error) (*tracking.TaskTracking, error) {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return t, err
}
