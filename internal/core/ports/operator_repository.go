package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/operator"
)

// OperatorRepository is the operator lookup used by the engine.
type OperatorRepository interface {
	Add(ctx context.Context, aggregate *operator.Operator) error
	Update(ctx context.Context, aggregate *operator.Operator) error
	Get(ctx context.Context, id int64) (*operator.Operator, error)

	// GetForUpdate retrieves an operator and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*operator.Operator, error)
}
