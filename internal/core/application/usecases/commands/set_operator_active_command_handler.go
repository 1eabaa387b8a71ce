package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/operator"
)

type SetOperatorActiveCommandHandler struct {
	uowFactory OperatorUoWFactory
}

func NewSetOperatorActiveCommandHandler(uowFactory OperatorUoWFactory) SetOperatorActiveCommandHandler {
	return SetOperatorActiveCommandHandler{uowFactory: uowFactory}
}

func (h SetOperatorActiveCommandHandler) Handle(ctx context.Context, command SetOperatorActiveCommand) (*operator.Operator, error) {
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

	repo := uow.OperatorRepository()

	o, err := repo.GetForUpdate(ctx, command.OperatorID())
	if err != nil {
		return nil, err
	}

	if command.Active() {
		o.Activate()
	} else {
		o.Deactivate()
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
