package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/project"
)

// RegisterProjectCommandHandler creates a project and all of its parts, in state
// CREATED, in one transaction.
type RegisterProjectCommandHandler struct {
	uowFactory ProjectUoWFactory
	clock      kernel.Clock
}

func NewRegisterProjectCommandHandler(uowFactory ProjectUoWFactory, clock kernel.Clock) RegisterProjectCommandHandler {
	return RegisterProjectCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle processes the registration and returns the stored project.
func (h RegisterProjectCommandHandler) Handle(ctx context.Context, command RegisterProjectCommand) (*project.Project, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	prj, err := project.NewProject(command.ClientAlias(), command.Contact(), command.InstallationDate(), h.clock.Now())
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

	if err = uow.ProjectRepository().Add(ctx, prj); err != nil {
		return nil, err
	}

	partRepo := uow.PartRepository()
	for i, spec := range command.Parts() {
		p, err := part.NewPart(kernel.NewUUID(), prj.ID(), command.descriptor(i), spec.Observations)
		if err != nil {
			return nil, err
		}
		if err = partRepo.Add(ctx, p); err != nil {
			return nil, err
		}
		if err = prj.AddPart(p.ID()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return prj, nil
}
