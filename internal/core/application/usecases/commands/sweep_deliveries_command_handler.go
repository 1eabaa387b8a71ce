package commands

import (
	"context"
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/part"
)

// ProjectCompletionChecker runs the completion check of a single project.
type ProjectCompletionChecker interface {
	Handle(ctx context.Context, command CheckProjectCompletionCommand) (ProjectCompletionResult, error)
}

// SweepDeliveriesCommandHandler runs the completion check for every project that
// still has parts in transit to site.
type SweepDeliveriesCommandHandler struct {
	uowFactory ProjectUoWFactory
	checker    ProjectCompletionChecker
}

// NewSweepDeliveriesCommandHandler creates a sweep handler delegating each project to checker.
func NewSweepDeliveriesCommandHandler(uowFactory ProjectUoWFactory, checker ProjectCompletionChecker) SweepDeliveriesCommandHandler {
	return SweepDeliveriesCommandHandler{uowFactory: uowFactory, checker: checker}
}

// Handle returns the results of the projects that were advanced to INSTALLED.
func (h SweepDeliveriesCommandHandler) Handle(ctx context.Context, command SweepDeliveriesCommand) ([]ProjectCompletionResult, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	projectIDs, err := uow.ProjectRepository().GetIDsWithPartsInState(ctx, part.InTransitToSite)
	_ = uow.Rollback(ctx)
	if err != nil {
		return nil, err
	}

	var (
		advanced []ProjectCompletionResult
		failure  []error
	)
	for _, id := range projectIDs {
		cmd, err := NewCheckProjectCompletionCommand(id)
		if err != nil {
			failure = append(failure, err)
			continue
		}
		res, err := h.checker.Handle(ctx, cmd)
		if err != nil {
			failure = append(failure, fmt.Errorf("project %d: %w", id, err))
			continue
		}
		if res.Advanced {
			advanced = append(advanced, res)
		}
	}

	return advanced, errors.Join(failure...)
}
