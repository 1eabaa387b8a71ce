package services

import (
	"time"

	"shopfloor/internal/core/domain/model/operator"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/tracking"
	"shopfloor/internal/pkg/errs"
)

// AssignmentPolicy enforces the exclusivity rules of taking a part: a part has at
// most one open task and an operator holds at most one open task.
type AssignmentPolicy struct{}

// NewAssignmentPolicy creates a new AssignmentPolicy instance.
func NewAssignmentPolicy() AssignmentPolicy {
	return AssignmentPolicy{}
}

// Assign opens a task for o on p.
//
// Parameters:
//   - p: the locked part
//   - o: the locked operator
//   - partTask: the part's open task, or nil
//   - operatorTask: the operator's open task, or nil
//   - now: the start time of the new task
//
// Returns:
//   - *tracking.TaskTracking: the new open task, not yet persisted
//   - error: AlreadyAssignedError, OperatorBusyError, or InvalidStateError for an inactive operator
func (AssignmentPolicy) Assign(
	p *part.Part,
	o *operator.Operator,
	partTask *tracking.TaskTracking,
	operatorTask *tracking.TaskTracking,
	now time.Time,
) (*tracking.TaskTracking, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if partTask != nil && partTask.IsActive() {
		return nil, errs.NewAlreadyAssignedError(p.ID().String())
	}
	if operatorTask != nil && operatorTask.IsActive() {
		return nil, errs.NewOperatorBusyError(o.ID())
	}
	if err := o.EnsureCanTakeWork(); err != nil {
		return nil, err
	}

	return tracking.NewTaskTracking(p.ID(), o.ID(), p.State(), now)
}
