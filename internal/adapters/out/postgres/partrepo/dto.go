// Package partrepo persists part aggregates. A part row stores the state by its
// catalog name so the column stays readable and survives reordering of the
// catalog.
package partrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"

	"github.com/google/uuid"
)

// PartDTO represents the database structure for persisting part aggregates.
type PartDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID        int64     `gorm:"not null;index:idx_parts_project_state,priority:1"`
	PartTypeName     string    `gorm:"not null"`
	MaterialName     string    `gorm:"not null"`
	WeightKg         *float64  `gorm:"type:double precision"`
	State            string    `gorm:"type:varchar(32);not null;index:idx_parts_project_state,priority:2;index:idx_parts_state"`
	Observations     string    `gorm:"not null"`
	ReadyForDelivery bool      `gorm:"not null"`
	ReceivedAt       *time.Time
	PackingCodePath  string `gorm:"not null"`
}

// TableName overrides GORM's naming convention.
func (PartDTO) TableName() string {
	return "parts"
}

func fromDomain(p *part.Part) PartDTO {
	descriptor := p.Descriptor()

	return PartDTO{
		ID:               p.ID().Bytes(),
		ProjectID:        p.ProjectID(),
		PartTypeName:     descriptor.PartTypeName(),
		MaterialName:     descriptor.MaterialName(),
		WeightKg:         descriptor.WeightKg(),
		State:            p.State().String(),
		Observations:     p.Observations(),
		ReadyForDelivery: p.IsReadyForDelivery(),
		ReceivedAt:       p.ReceivedAt(),
		PackingCodePath:  p.PackingCodePath(),
	}
}

func toDomain(dto PartDTO) (*part.Part, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	state, err := part.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	descriptor, err := part.NewDescriptor(dto.PartTypeName, dto.MaterialName, dto.WeightKg)
	if err != nil {
		return nil, err
	}

	return part.RestorePart(
		id,
		dto.ProjectID,
		descriptor,
		state,
		dto.Observations,
		dto.ReadyForDelivery,
		dto.ReceivedAt,
		dto.PackingCodePath,
	)
}

func toDomainList(dtos []PartDTO) ([]*part.Part, error) {
	parts := make([]*part.Part, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}
