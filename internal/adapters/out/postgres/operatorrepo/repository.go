// Package operatorrepo persists operators.
package operatorrepo

import (
	"context"
	"errors"
	"strconv"

	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/core/domain/model/operator"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOperatorRepository implements ports.OperatorRepository using GORM.
type GormOperatorRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

// NewGormOperatorRepository creates a new GORM operator repository.
func NewGormOperatorRepository(db *gorm.DB, tracker aggregateTracker) *GormOperatorRepository {
	return &GormOperatorRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts an operator and assigns the generated id to it.
func (r *GormOperatorRepository) Add(ctx context.Context, aggregate *operator.Operator) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify("add operator", err)
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Update saves the display name and active flag.
func (r *GormOperatorRepository) Update(ctx context.Context, aggregate *operator.Operator) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OperatorDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify("update operator", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("operator", dto.ID)
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an operator by id.
func (r *GormOperatorRepository) Get(ctx context.Context, id int64) (*operator.Operator, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves an operator and holds a row lock until the transaction ends.
func (r *GormOperatorRepository) GetForUpdate(ctx context.Context, id int64) (*operator.Operator, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOperatorRepository) get(ctx context.Context, db *gorm.DB, id int64) (*operator.Operator, error) {
	var dto OperatorDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("operator", id)
		}
		return nil, pgerr.Classify("get operator", err)
	}

	return toDomain(dto)
}

func (r *GormOperatorRepository) track(aggregate *operator.Operator) {
	r.tracker.TrackAggregate("operator:"+strconv.FormatInt(aggregate.ID(), 10), aggregate)
}
