package errs

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyAssigned     = errors.New("part is already assigned")
	ErrOperatorBusy        = errors.New("operator is busy")
	ErrNoActiveTask        = errors.New("no active task")
	ErrDescriptionRequired = errors.New("description is required")
	ErrAlreadyConfirmed    = errors.New("delivery is already confirmed")
	ErrInvalidPayload      = errors.New("payload is invalid")
	ErrInvalidState        = errors.New("state is invalid")
	ErrStorageUnavailable  = errors.New("storage is unavailable")
)

// AlreadyAssignedError is returned when a part already has an active task.
type AlreadyAssignedError struct {
	PartID string
	Cause  error
}

// NewAlreadyAssignedError creates an AlreadyAssignedError for the given part.
func NewAlreadyAssignedError(partID string) *AlreadyAssignedError {
	return &AlreadyAssignedError{PartID: partID}
}

// NewAlreadyAssignedErrorWithCause keeps the driver error that revealed the conflict.
func NewAlreadyAssignedErrorWithCause(partID string, cause error) *AlreadyAssignedError {
	return &AlreadyAssignedError{PartID: partID, Cause: cause}
}

func (e *AlreadyAssignedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrAlreadyAssigned, e.PartID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrAlreadyAssigned, e.PartID)
}

func (e *AlreadyAssignedError) Unwrap() error {
	return ErrAlreadyAssigned
}

// OperatorBusyError is returned when an operator already holds an active task.
type OperatorBusyError struct {
	OperatorID any
	Cause      error
}

// NewOperatorBusyError creates an OperatorBusyError for the given operator.
func NewOperatorBusyError(operatorID any) *OperatorBusyError {
	return &OperatorBusyError{OperatorID: operatorID}
}

// NewOperatorBusyErrorWithCause keeps the driver error that revealed the conflict.
func NewOperatorBusyErrorWithCause(operatorID any, cause error) *OperatorBusyError {
	return &OperatorBusyError{OperatorID: operatorID, Cause: cause}
}

func (e *OperatorBusyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v (cause: %v)", ErrOperatorBusy, e.OperatorID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", ErrOperatorBusy, e.OperatorID)
}

func (e *OperatorBusyError) Unwrap() error {
	return ErrOperatorBusy
}

// NoActiveTaskError is returned when no open task matches a (part, operator) pair.
type NoActiveTaskError struct {
	PartID     string
	OperatorID any
}

// NewNoActiveTaskError creates a NoActiveTaskError for the given pair.
func NewNoActiveTaskError(partID string, operatorID any) *NoActiveTaskError {
	return &NoActiveTaskError{PartID: partID, OperatorID: operatorID}
}

func (e *NoActiveTaskError) Error() string {
	return fmt.Sprintf("%s: part %s, operator %v", ErrNoActiveTask, e.PartID, e.OperatorID)
}

func (e *NoActiveTaskError) Unwrap() error {
	return ErrNoActiveTask
}

// DescriptionRequiredError is returned when a manual transition has no rationale.
type DescriptionRequiredError struct {
	ParamName string
}

// NewDescriptionRequiredError creates a DescriptionRequiredError.
func NewDescriptionRequiredError(paramName string) *DescriptionRequiredError {
	return &DescriptionRequiredError{ParamName: paramName}
}

func (e *DescriptionRequiredError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDescriptionRequired, e.ParamName)
}

func (e *DescriptionRequiredError) Unwrap() error {
	return ErrDescriptionRequired
}

// AlreadyConfirmedError is returned when a delivery code is scanned twice.
type AlreadyConfirmedError struct {
	PartID string
}

// NewAlreadyConfirmedError creates an AlreadyConfirmedError for the given part.
func NewAlreadyConfirmedError(partID string) *AlreadyConfirmedError {
	return &AlreadyConfirmedError{PartID: partID}
}

func (e *AlreadyConfirmedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyConfirmed, e.PartID)
}

func (e *AlreadyConfirmedError) Unwrap() error {
	return ErrAlreadyConfirmed
}

// InvalidPayloadError is returned when a scanned code cannot be decoded.
type InvalidPayloadError struct {
	Reason string
	Cause  error
}

// NewInvalidPayloadError creates an InvalidPayloadError with a short reason.
func NewInvalidPayloadError(reason string) *InvalidPayloadError {
	return &InvalidPayloadError{Reason: reason}
}

// NewInvalidPayloadErrorWithCause creates an InvalidPayloadError that keeps the parse error.
func NewInvalidPayloadErrorWithCause(reason string, cause error) *InvalidPayloadError {
	return &InvalidPayloadError{Reason: reason, Cause: cause}
}

func (e *InvalidPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidPayload, sanitize(e.Reason), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidPayload, sanitize(e.Reason))
}

func (e *InvalidPayloadError) Unwrap() error {
	return ErrInvalidPayload
}

// InvalidStateError is returned when an aggregate is not in a state that allows the operation.
type InvalidStateError struct {
	ParamName string
	State     string
	Cause     error
}

// NewInvalidStateError creates an InvalidStateError.
//
// Example:
//
//	return errs.NewInvalidStateError("part", p.State().String(),
//	    fmt.Errorf("delivery can only be confirmed while %s", Packed))
func NewInvalidStateError(paramName, state string, cause error) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName, State: state, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is %s (cause: %v)", ErrInvalidState, e.ParamName, e.State, e.Cause)
	}
	return fmt.Sprintf("%s: %s is %s", ErrInvalidState, e.ParamName, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// StorageUnavailableError wraps transaction conflicts and connectivity failures.
// Unlike the other types it keeps the cause in the chain so callers can still
// match context cancellation.
type StorageUnavailableError struct {
	Operation string
	Cause     error
}

// NewStorageUnavailableError creates a StorageUnavailableError.
func NewStorageUnavailableError(operation string, cause error) *StorageUnavailableError {
	return &StorageUnavailableError{Operation: operation, Cause: cause}
}

func (e *StorageUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrStorageUnavailable, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrStorageUnavailable, e.Operation)
}

func (e *StorageUnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrStorageUnavailable}
	}
	return []error{ErrStorageUnavailable, e.Cause}
}
