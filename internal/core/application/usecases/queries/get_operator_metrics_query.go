package queries

import (
	"errors"
	"fmt"
	"time"

	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrGetOperatorMetricsQueryIsNotConstructed = errors.New(
	"GetOperatorMetricsQuery must be created via NewGetOperatorMetricsQuery constructor",
)

// GetOperatorMetricsQuery summarizes the closed tasks of one operator. A missing
// bound is filled by the handler: To defaults to now, From to the configured
// number of days before To.
//
// Example:
//
//	query, err := NewGetOperatorMetricsQuery(operatorID, nil, nil)
//	if err != nil {
//	    return err
//	}
//	metrics, err := handler.Handle(ctx, query)
type GetOperatorMetricsQuery struct {
	operatorID int64
	from       *time.Time
	to         *time.Time
	guard      guard.ConstructorGuard
}

// NewGetOperatorMetricsQuery creates a metrics query over an optional window.
func NewGetOperatorMetricsQuery(operatorID int64, from, to *time.Time) (GetOperatorMetricsQuery, error) {
	if err := validateOperatorID(operatorID); err != nil {
		return GetOperatorMetricsQuery{}, err
	}
	if from != nil && to != nil && from.After(*to) {
		return GetOperatorMetricsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"window",
			fmt.Errorf("from %s is after to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
		)
	}

	return GetOperatorMetricsQuery{
		operatorID: operatorID,
		from:       from,
		to:         to,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOperatorMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetOperatorMetricsQueryIsNotConstructed)
}

// OperatorID returns the operator the metrics are computed for.
func (q GetOperatorMetricsQuery) OperatorID() int64 {
	return q.operatorID
}

// From returns the requested window start, or nil.
func (q GetOperatorMetricsQuery) From() *time.Time {
	return q.from
}

// To returns the requested window end, or nil.
func (q GetOperatorMetricsQuery) To() *time.Time {
	return q.to
}

func validateOperatorID(operatorID int64) error {
	if operatorID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("operatorID", fmt.Errorf("%d is not a positive id", operatorID))
	}
	return nil
}
