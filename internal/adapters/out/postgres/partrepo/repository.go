package partrepo

import (
	"context"
	"errors"

	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartRepository implements ports.PartRepository using GORM.
type GormPartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

// NewGormPartRepository creates a new GORM part repository.
func NewGormPartRepository(db *gorm.DB, tracker aggregateTracker) *GormPartRepository {
	return &GormPartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new part.
func (r *GormPartRepository) Add(ctx context.Context, aggregate *part.Part) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify("add part", err)
	}

	r.track(aggregate)
	return nil
}

// Update writes every column of an existing part, zero values included.
func (r *GormPartRepository) Update(ctx context.Context, aggregate *part.Part) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PartDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify("update part", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("part", aggregate.ID().String())
	}

	r.track(aggregate)
	return nil
}

// Get retrieves a part by id.
func (r *GormPartRepository) Get(ctx context.Context, id kernel.UUID) (*part.Part, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves a part and holds a row lock until the transaction ends.
func (r *GormPartRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*part.Part, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetByProjectAndState locks and returns the parts of a project in state, ordered by id.
func (r *GormPartRepository) GetByProjectAndState(ctx context.Context, projectID int64, state part.State) ([]*part.Part, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	var dtos []PartDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ? AND state = ?", projectID, state.String()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Classify("get parts by project and state", err)
	}

	return toDomainList(dtos)
}

// GetPackedWithoutCode returns up to limit packed parts whose packing code was never rendered.
func (r *GormPartRepository) GetPackedWithoutCode(ctx context.Context, limit int) ([]*part.Part, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []PartDTO
	err := r.db.WithContext(ctx).
		Where("state = ? AND packing_code_path = ''", part.Packed.String()).
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Classify("get packed parts without code", err)
	}

	return toDomainList(dtos)
}

// Delete removes a part. Its task trackings go with it through the foreign key.
func (r *GormPartRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&PartDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Classify("delete part", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("part", id.String())
	}

	return nil
}

func (r *GormPartRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*part.Part, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("part", id.String())
		}
		return nil, pgerr.Classify("get part", err)
	}

	return toDomain(dto)
}

func (r *GormPartRepository) track(aggregate *part.Part) {
	r.tracker.TrackAggregate("part:"+aggregate.ID().String(), aggregate)
}
