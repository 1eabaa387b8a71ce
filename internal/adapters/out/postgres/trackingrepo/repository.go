// Package trackingrepo persists task trackings. The store is the final arbiter
// of exclusivity: inserting a second open tracking for a part or an operator
// fails on a partial unique index and surfaces as AlreadyAssigned or
// OperatorBusy, whichever index tripped.
package trackingrepo

import (
	"context"
	"errors"
	"strconv"

	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/tracking"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTaskTrackingRepository implements ports.TaskTrackingRepository using GORM.
type GormTaskTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

// NewGormTaskTrackingRepository creates a new GORM task tracking repository.
func NewGormTaskTrackingRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskTrackingRepository {
	return &GormTaskTrackingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts an open tracking and assigns the generated id to it.
func (r *GormTaskTrackingRepository) Add(ctx context.Context, t *tracking.TaskTracking) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		switch {
		case pgerr.UniqueViolation(err, pgerr.ActivePartIndex):
			return errs.NewAlreadyAssignedErrorWithCause(t.PartID().String(), err)
		case pgerr.UniqueViolation(err, pgerr.ActiveOperatorIndex):
			return errs.NewOperatorBusyErrorWithCause(t.OperatorID(), err)
		default:
			return pgerr.Classify("add task tracking", err)
		}
	}

	if err := t.AssignID(dto.ID); err != nil {
		return err
	}

	r.track(t)
	return nil
}

// Update closes a tracking. Only rows that are still open are touched, so a
// closed tracking is never rewritten.
func (r *GormTaskTrackingRepository) Update(ctx context.Context, t *tracking.TaskTracking) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	result := r.db.WithContext(ctx).
		Model(&TaskTrackingDTO{}).
		Where("id = ? AND is_active", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify("update task tracking", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("active taskTracking", dto.ID)
	}

	r.track(t)
	return nil
}

// Get retrieves a tracking by id.
func (r *GormTaskTrackingRepository) Get(ctx context.Context, id int64) (*tracking.TaskTracking, error) {
	var dto TaskTrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("taskTracking", id)
		}
		return nil, pgerr.Classify("get task tracking", err)
	}

	return ToDomain(dto)
}

// GetActiveByPart returns the open tracking of a part.
func (r *GormTaskTrackingRepository) GetActiveByPart(ctx context.Context, partID kernel.UUID) (*tracking.TaskTracking, error) {
	if err := partID.Validate(); err != nil {
		return nil, err
	}

	return r.getActive(ctx, "part_id = ? AND is_active", partID.Bytes(), "active taskTracking for part", partID.String())
}

// GetActiveByOperator returns the open tracking of an operator.
func (r *GormTaskTrackingRepository) GetActiveByOperator(ctx context.Context, operatorID int64) (*tracking.TaskTracking, error) {
	return r.getActive(ctx, "operator_id = ? AND is_active", operatorID, "active taskTracking for operator", operatorID)
}

// Delete removes a single tracking.
func (r *GormTaskTrackingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&TaskTrackingDTO{}, "id = ?", id)
	if result.Error != nil {
		return pgerr.Classify("delete task tracking", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("taskTracking", id)
	}

	return nil
}

func (r *GormTaskTrackingRepository) getActive(ctx context.Context, where string, arg any, what string, id any) (*tracking.TaskTracking, error) {
	var dto TaskTrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, where, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(what, id)
		}
		return nil, pgerr.Classify("get active task tracking", err)
	}

	return ToDomain(dto)
}

func (r *GormTaskTrackingRepository) track(t *tracking.TaskTracking) {
	r.tracker.TrackAggregate("taskTracking:"+strconv.FormatInt(t.ID(), 10), t)
}
