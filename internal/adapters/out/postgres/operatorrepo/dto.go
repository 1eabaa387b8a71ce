package operatorrepo

import "shopfloor/internal/core/domain/model/operator"

// OperatorDTO is the operators row.
type OperatorDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	DisplayName string `gorm:"not null"`
	Active      bool   `gorm:"not null"`
}

// TableName overrides GORM's naming convention.
func (OperatorDTO) TableName() string {
	return "operators"
}

func fromDomain(o *operator.Operator) OperatorDTO {
	return OperatorDTO{
		ID:          o.ID(),
		DisplayName: o.DisplayName(),
		Active:      o.IsActive(),
	}
}

func toDomain(dto OperatorDTO) (*operator.Operator, error) {
	return operator.RestoreOperator(dto.ID, dto.DisplayName, dto.Active)
}
