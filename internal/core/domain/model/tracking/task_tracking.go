package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

// ErrTaskTrackingIsNotConstructed is returned when a TaskTracking bypassed its constructors.
var ErrTaskTrackingIsNotConstructed = errors.New(
	"TaskTracking must be created via NewTaskTracking or RestoreTaskTracking constructor",
)

// TaskTracking records who worked a part, from which state, into which state and for how long.
//
// Invariants:
//   - endTime is set if and only if the tracking is closed
//   - durationMinutes is set if and only if endTime is set
//   - stateAtCompletion is a valid state if and only if the tracking is closed
//   - the numeric id is assigned once, by the store
type TaskTracking struct {
	id                 int64
	partID             kernel.UUID
	operatorID         int64
	stateAtStart       part.State
	stateAtCompletion  part.State
	startTime          time.Time
	endTime            *time.Time
	durationMinutes    *int64
	isActive           bool
	outcomeDescription string
	guard              guard.ConstructorGuard
}

// NewTaskTracking opens a tracking for operatorID on partID, which is currently in stateAtStart.
//
// Example:
//
//	t, err := tracking.NewTaskTracking(p.ID(), operatorID, p.State(), clock.Now())
func NewTaskTracking(partID kernel.UUID, operatorID int64, stateAtStart part.State, startTime time.Time) (*TaskTracking, error) {
	t := &TaskTracking{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setPartID(partID),
		t.setOperatorID(operatorID),
		t.setStateAtStart(stateAtStart),
		t.setStartTime(startTime),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTaskTracking rebuilds a tracking from persistence and re-checks its invariants.
func RestoreTaskTracking(
	id int64,
	partID kernel.UUID,
	operatorID int64,
	stateAtStart part.State,
	stateAtCompletion part.State,
	startTime time.Time,
	endTime *time.Time,
	durationMinutes *int64,
	isActive bool,
	outcomeDescription string,
) (*TaskTracking, error) {
	t := &TaskTracking{
		isActive:           isActive,
		outcomeDescription: outcomeDescription,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setPartID(partID),
		t.setOperatorID(operatorID),
		t.setStateAtStart(stateAtStart),
		t.setStartTime(startTime),
		t.restoreClosing(stateAtCompletion, endTime, durationMinutes),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the tracking was properly constructed.
func (t *TaskTracking) Validate() error {
	if t == nil {
		return ErrTaskTrackingIsNotConstructed
	}
	return t.guard.Validate(ErrTaskTrackingIsNotConstructed)
}

// ID returns the store-assigned id, 0 before the first save.
func (t *TaskTracking) ID() int64 {
	return t.id
}

// PartID returns the tracked part.
func (t *TaskTracking) PartID() kernel.UUID {
	return t.partID
}

// OperatorID returns the assigned operator.
func (t *TaskTracking) OperatorID() int64 {
	return t.operatorID
}

// StateAtStart returns the part state when the task was taken.
func (t *TaskTracking) StateAtStart() part.State {
	return t.stateAtStart
}

// StateAtCompletion returns the state the part was moved into, or part.Unknown while open.
func (t *TaskTracking) StateAtCompletion() part.State {
	return t.stateAtCompletion
}

// StartTime returns when the task was taken.
func (t *TaskTracking) StartTime() time.Time {
	return t.startTime
}

// EndTime returns when the task was closed, or nil while open.
func (t *TaskTracking) EndTime() *time.Time {
	if t.endTime == nil {
		return nil
	}
	end := *t.endTime
	return &end
}

// DurationMinutes returns the whole minutes worked, or nil while open.
func (t *TaskTracking) DurationMinutes() *int64 {
	if t.durationMinutes == nil {
		return nil
	}
	d := *t.durationMinutes
	return &d
}

// IsActive reports whether the task is still open.
func (t *TaskTracking) IsActive() bool {
	return t.isActive
}

// OutcomeDescription returns the rationale of a manual close, "" otherwise.
func (t *TaskTracking) OutcomeDescription() string {
	return t.outcomeDescription
}

// AssignID stores the id generated by the store. It can be called once.
func (t *TaskTracking) AssignID(id int64) error {
	if t.id != 0 {
		return errs.NewInvalidStateError("taskTracking", fmt.Sprintf("id %d", t.id), errors.New("id already assigned"))
	}
	return t.setID(id)
}

// Complete closes the task along the default path into next.
func (t *TaskTracking) Complete(next part.State, endTime time.Time) error {
	return t.close(next, endTime, "")
}

// CloseManually closes the task into target with a mandatory rationale.
// Any valid state is accepted as target.
func (t *TaskTracking) CloseManually(target part.State, endTime time.Time, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewDescriptionRequiredError("outcomeDescription")
	}
	return t.close(target, endTime, description)
}

func (t *TaskTracking) close(to part.State, endTime time.Time, description string) error {
	if !t.isActive {
		return errs.NewInvalidStateError("taskTracking", "closed", errors.New("a closed task cannot be closed again"))
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if endTime.IsZero() {
		return errs.NewValueIsRequiredError("endTime")
	}

	end := endTime.UTC()
	duration := wholeMinutes(t.startTime, end)

	t.stateAtCompletion = to
	t.endTime = &end
	t.durationMinutes = &duration
	t.isActive = false
	t.outcomeDescription = description
	return nil
}

// wholeMinutes truncates to whole minutes and clamps clock skew to zero.
func wholeMinutes(start, end time.Time) int64 {
	minutes := int64(end.Sub(start) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

func (t *TaskTracking) setID(id int64) error {
	if id < 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is negative", id))
	}
	t.id = id
	return nil
}

func (t *TaskTracking) setPartID(partID kernel.UUID) error {
	if err := partID.Validate(); err != nil {
		return err
	}
	t.partID = partID
	return nil
}

func (t *TaskTracking) setOperatorID(operatorID int64) error {
	if operatorID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("operatorID", fmt.Errorf("%d is not a positive id", operatorID))
	}
	t.operatorID = operatorID
	return nil
}

func (t *TaskTracking) setStateAtStart(state part.State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	t.stateAtStart = state
	return nil
}

func (t *TaskTracking) setStartTime(startTime time.Time) error {
	if startTime.IsZero() {
		return errs.NewValueIsRequiredError("startTime")
	}
	t.startTime = startTime.UTC()
	return nil
}

func (t *TaskTracking) restoreClosing(stateAtCompletion part.State, endTime *time.Time, durationMinutes *int64) error {
	if t.isActive {
		if endTime != nil || durationMinutes != nil || stateAtCompletion != part.Unknown {
			return errs.NewInvalidStateError("taskTracking", "active", errors.New("an active task has no end"))
		}
		return nil
	}

	if endTime == nil || durationMinutes == nil {
		return errs.NewInvalidStateError("taskTracking", "closed", errors.New("a closed task needs end time and duration"))
	}
	if err := stateAtCompletion.Validate(); err != nil {
		return err
	}
	if *durationMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("durationMinutes", fmt.Errorf("%d is negative", *durationMinutes))
	}

	end := endTime.UTC()
	duration := *durationMinutes
	t.stateAtCompletion = stateAtCompletion
	t.endTime = &end
	t.durationMinutes = &duration
	return nil
}
