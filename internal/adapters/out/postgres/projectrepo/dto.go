package projectrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/project"

	"github.com/google/uuid"
)

// ProjectDTO is the projects row. Part ids are not stored here; they are read
// back from parts.project_id.
type ProjectDTO struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	ClientAlias      string `gorm:"type:varchar(50);not null"`
	Contact          string `gorm:"not null"`
	InstallationDate *time.Time
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName overrides GORM's naming convention.
func (ProjectDTO) TableName() string {
	return "projects"
}

func fromDomain(p *project.Project) ProjectDTO {
	return ProjectDTO{
		ID:               p.ID(),
		ClientAlias:      p.ClientAlias(),
		Contact:          p.Contact(),
		InstallationDate: p.InstallationDate(),
		CreatedAt:        p.CreatedAt(),
	}
}

func toDomain(dto ProjectDTO, partIDs []uuid.UUID) (*project.Project, error) {
	ids := make([]kernel.UUID, 0, len(partIDs))
	for _, raw := range partIDs {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return project.RestoreProject(
		dto.ID,
		dto.ClientAlias,
		dto.Contact,
		dto.InstallationDate,
		dto.CreatedAt,
		ids,
	)
}
