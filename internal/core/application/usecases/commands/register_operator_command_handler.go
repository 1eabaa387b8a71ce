package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/operator"
)

type RegisterOperatorCommandHandler struct {
	uowFactory OperatorUoWFactory
}

func NewRegisterOperatorCommandHandler(uowFactory OperatorUoWFactory) RegisterOperatorCommandHandler {
	return RegisterOperatorCommandHandler{uowFactory: uowFactory}
}

// Handle stores a new active operator and returns it with its id.
func (h RegisterOperatorCommandHandler) Handle(ctx context.Context, command RegisterOperatorCommand) (*operator.Operator, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := operator.NewOperator(command.DisplayName())
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

	if err = uow.OperatorRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
