package trackingrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TaskTrackingDTO represents one row of the work log. Open rows have no
// completion columns; partial unique indexes keep at most one open row per part
// and per operator.
type TaskTrackingDTO struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	PartID             uuid.UUID `gorm:"type:uuid;not null;index"`
	OperatorID         int64     `gorm:"not null;index"`
	StateAtStart       string    `gorm:"type:varchar(32);not null"`
	StateAtCompletion  *string   `gorm:"type:varchar(32)"`
	StartTime          time.Time `gorm:"not null"`
	EndTime            *time.Time
	DurationMinutes    *int64
	IsActive           bool   `gorm:"not null;index"`
	OutcomeDescription string `gorm:"not null"`
}

// TableName overrides GORM's naming convention.
func (TaskTrackingDTO) TableName() string {
	return "task_trackings"
}

func fromDomain(t *tracking.TaskTracking) TaskTrackingDTO {
	dto := TaskTrackingDTO{
		ID:                 t.ID(),
		PartID:             t.PartID().Bytes(),
		OperatorID:         t.OperatorID(),
		StateAtStart:       t.StateAtStart().String(),
		StartTime:          t.StartTime(),
		EndTime:            t.EndTime(),
		DurationMinutes:    t.DurationMinutes(),
		IsActive:           t.IsActive(),
		OutcomeDescription: t.OutcomeDescription(),
	}
	if !t.IsActive() {
		completion := t.StateAtCompletion().String()
		dto.StateAtCompletion = &completion
	}
	return dto
}

// ToDomain rebuilds a tracking from its row. Query handlers reuse it.
func ToDomain(dto TaskTrackingDTO) (*tracking.TaskTracking, error) {
	partID, err := kernel.UUIDFromBytes(dto.PartID[:])
	if err != nil {
		return nil, err
	}

	stateAtStart, err := part.ParseState(dto.StateAtStart)
	if err != nil {
		return nil, err
	}

	var stateAtCompletion part.State
	if dto.StateAtCompletion != nil {
		stateAtCompletion, err = part.ParseState(*dto.StateAtCompletion)
		if err != nil {
			return nil, err
		}
	}

	return tracking.RestoreTaskTracking(
		dto.ID,
		partID,
		dto.OperatorID,
		stateAtStart,
		stateAtCompletion,
		dto.StartTime,
		dto.EndTime,
		dto.DurationMinutes,
		dto.IsActive,
		dto.OutcomeDescription,
	)
}
