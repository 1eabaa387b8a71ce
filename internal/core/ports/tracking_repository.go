package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/tracking"
)

// TaskTrackingRepository defines the persistence contract for task trackings.
//
// The store enforces part and operator exclusivity on open trackings: Add fails
// with an AlreadyAssignedError or OperatorBusyError when a concurrent caller won
// the race, even if the preceding reads saw no open tracking.
type TaskTrackingRepository interface {
	// Add persists a new tracking and assigns its id.
	Add(ctx context.Context, t *tracking.TaskTracking) error

	// Update persists the closing of a tracking.
	Update(ctx context.Context, t *tracking.TaskTracking) error

	// Get retrieves a tracking by id.
	Get(ctx context.Context, id int64) (*tracking.TaskTracking, error)

	// GetActiveByPart returns the open tracking of a part, or an ObjectNotFoundError.
	GetActiveByPart(ctx context.Context, partID kernel.UUID) (*tracking.TaskTracking, error)

	// GetActiveByOperator returns the open tracking of an operator, or an ObjectNotFoundError.
	GetActiveByOperator(ctx context.Context, operatorID int64) (*tracking.TaskTracking, error)

	// Delete removes a single tracking.
	Delete(ctx context.Context, id int64) error
}
