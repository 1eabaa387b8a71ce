package queries

import (
	"errors"

	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

// DefaultHistoryLimit caps an operator history when no limit is given.
const DefaultHistoryLimit = 100

var ErrGetOperatorHistoryQueryIsNotConstructed = errors.New(
	"GetOperatorHistoryQuery must be created via NewGetOperatorHistoryQuery constructor",
)

// GetOperatorHistoryQuery lists the closed tasks of an operator, newest first.
type GetOperatorHistoryQuery struct {
	operatorID int64
	limit      int
	guard      guard.ConstructorGuard
}

// NewGetOperatorHistoryQuery creates a history query. A zero limit means DefaultHistoryLimit.
func NewGetOperatorHistoryQuery(operatorID int64, limit int) (GetOperatorHistoryQuery, error) {
	if err := validateOperatorID(operatorID); err != nil {
		return GetOperatorHistoryQuery{}, err
	}
	if limit < 0 {
		return GetOperatorHistoryQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, "unbounded")
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	return GetOperatorHistoryQuery{
		operatorID: operatorID,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOperatorHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOperatorHistoryQueryIsNotConstructed)
}

func (q GetOperatorHistoryQuery) OperatorID() int64 {
	return q.operatorID
}

func (q GetOperatorHistoryQuery) Limit() int {
	return q.limit
}
