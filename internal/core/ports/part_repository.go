// Package ports defines the contracts between the shop-floor engine and its
// infrastructure: repositories, the unit of work and the code renderer.
package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
)

// PartRepository defines the persistence contract for part aggregates.
type PartRepository interface {
	// Add persists a new part.
	Add(ctx context.Context, aggregate *part.Part) error

	// Update persists changes to an existing part.
	Update(ctx context.Context, aggregate *part.Part) error

	// Get retrieves a part by id. Returns an ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*part.Part, error)

	// GetForUpdate retrieves a part and locks its row until the transaction ends.
	// Callers that also lock an operator must lock the part first.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*part.Part, error)

	// GetByProjectAndState locks and returns the parts of a project in the given state.
	GetByProjectAndState(ctx context.Context, projectID int64, state part.State) ([]*part.Part, error)

	// GetPackedWithoutCode returns up to limit packed parts that have no rendered packing code.
	GetPackedWithoutCode(ctx context.Context, limit int) ([]*part.Part, error)

	// Delete removes a part and, through the schema, its task trackings.
	Delete(ctx context.Context, id kernel.UUID) error
}
