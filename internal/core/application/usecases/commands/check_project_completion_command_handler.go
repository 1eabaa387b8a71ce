package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/part"
)

// CheckProjectCompletionCommandHandler advances every in-transit part of a project
// to INSTALLED once all of them are confirmed ready for delivery. A single
// unconfirmed part holds back the whole project.
type CheckProjectCompletionCommandHandler struct {
	uowFactory ProjectUoWFactory
}

// NewCheckProjectCompletionCommandHandler creates a handler for completion checks.
func NewCheckProjectCompletionCommandHandler(uowFactory ProjectUoWFactory) CheckProjectCompletionCommandHandler {
	return CheckProjectCompletionCommandHandler{uowFactory: uowFactory}
}

// Handle processes the completion check. A project without in-transit parts is
// left untouched.
func (h CheckProjectCompletionCommandHandler) Handle(
	ctx context.Context,
	command CheckProjectCompletionCommand,
) (ProjectCompletionResult, error) {
	if err := command.Validate(); err != nil {
		return ProjectCompletionResult{}, err
	}

	result := ProjectCompletionResult{ProjectID: command.ProjectID()}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.ProjectRepository().Get(ctx, command.ProjectID()); err != nil {
		return result, err
	}

	partRepo := uow.PartRepository()
	parts, err := partRepo.GetByProjectAndState(ctx, command.ProjectID(), part.InTransitToSite)
	if err != nil {
		return result, err
	}

	result.InTransit = len(parts)
	for _, p := range parts {
		if p.IsReadyForDelivery() {
			result.Ready++
		}
	}

	if result.InTransit == 0 || result.Ready < result.InTransit {
		return result, nil
	}

	for _, p := range parts {
		if err = p.MoveTo(part.Installed); err != nil {
			return result, err
		}
		if err = partRepo.Update(ctx, p); err != nil {
			return result, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	result.Advanced = true
	return result, nil
}
