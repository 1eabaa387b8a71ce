package queries

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrGetTrackingsQueryIsNotConstructed = errors.New(
	"GetTrackingsQuery must be created via one of the NewGetTrackingsBy* constructors",
)

// GetTrackingsQuery lists trackings, open and closed, of exactly one part,
// project or operator.
//
// Example:
//
//	query, err := NewGetTrackingsByPartQuery(partID)
//	views, err := handler.Handle(ctx, query)
type GetTrackingsQuery struct {
	partID     *kernel.UUID
	projectID  *int64
	operatorID *int64
	guard      guard.ConstructorGuard
}

func NewGetTrackingsByPartQuery(partID kernel.UUID) (GetTrackingsQuery, error) {
	if err := partID.Validate(); err != nil {
		return GetTrackingsQuery{}, err
	}
	return GetTrackingsQuery{partID: &partID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetTrackingsByProjectQuery(projectID int64) (GetTrackingsQuery, error) {
	if projectID <= 0 {
		return GetTrackingsQuery{}, errs.NewValueIsInvalidErrorWithCause("projectID", fmt.Errorf("%d is not a positive id", projectID))
	}
	return GetTrackingsQuery{projectID: &projectID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetTrackingsByOperatorQuery(operatorID int64) (GetTrackingsQuery, error) {
	if err := validateOperatorID(operatorID); err != nil {
		return GetTrackingsQuery{}, err
	}
	return GetTrackingsQuery{operatorID: &operatorID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetTrackingsQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingsQueryIsNotConstructed)
}

// condition returns the WHERE clause for the filter the query was built with.
func (q GetTrackingsQuery) condition() (string, any) {
	switch {
	case q.partID != nil:
		return "t.part_id = ?", q.partID.Bytes()
	case q.projectID != nil:
		return "p.project_id = ?", *q.projectID
	default:
		return "t.operator_id = ?", *q.operatorID
	}
}
