package queries

import (
	"errors"

	"shopfloor/internal/pkg/guard"
)

var ErrGetActiveTaskQueryIsNotConstructed = errors.New(
	"GetActiveTaskQuery must be created via NewGetActiveTaskQuery constructor",
)

// GetActiveTaskQuery asks which part an operator is working on right now.
type GetActiveTaskQuery struct {
	operatorID int64
	guard      guard.ConstructorGuard
}

func NewGetActiveTaskQuery(operatorID int64) (GetActiveTaskQuery, error) {
	if err := validateOperatorID(operatorID); err != nil {
		return GetActiveTaskQuery{}, err
	}
	return GetActiveTaskQuery{operatorID: operatorID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveTaskQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveTaskQueryIsNotConstructed)
}

func (q GetActiveTaskQuery) OperatorID() int64 {
	return q.operatorID
}
