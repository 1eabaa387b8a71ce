package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/project"
)

// ProjectRepository defines the persistence contract for project aggregates.
type ProjectRepository interface {
	// Add persists a new project and assigns its id. Parts are stored separately.
	Add(ctx context.Context, aggregate *project.Project) error

	// Get retrieves a project together with the ids of its parts.
	Get(ctx context.Context, id int64) (*project.Project, error)

	// GetIDsWithPartsInState lists the ids of projects owning at least one part in state.
	GetIDsWithPartsInState(ctx context.Context, state part.State) ([]int64, error)
}
