// Package projectrepo persists projects. A project owns its parts through
// parts.project_id only; the project row never lists them.
package projectrepo

import (
	"context"
	"errors"
	"strconv"

	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/project"
	"shopfloor/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository implements ports.ProjectRepository using GORM.
type GormProjectRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

// NewGormProjectRepository creates a new GORM project repository.
func NewGormProjectRepository(db *gorm.DB, tracker aggregateTracker) *GormProjectRepository {
	return &GormProjectRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a project and assigns the generated id to it.
func (r *GormProjectRepository) Add(ctx context.Context, aggregate *project.Project) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify("add project", err)
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate("project:"+strconv.FormatInt(dto.ID, 10), aggregate)
	return nil
}

// Get retrieves a project and the ids of its parts.
func (r *GormProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	var dto ProjectDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("project", id)
		}
		return nil, pgerr.Classify("get project", err)
	}

	var partIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("parts").
		Where("project_id = ?", id).
		Order("id").
		Pluck("id", &partIDs).Error
	if err != nil {
		return nil, pgerr.Classify("get project parts", err)
	}

	return toDomain(dto, partIDs)
}

// GetIDsWithPartsInState lists, in ascending order, the projects owning at least one part in state.
func (r *GormProjectRepository) GetIDsWithPartsInState(ctx context.Context, state part.State) ([]int64, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Table("parts").
		Distinct("project_id").
		Where("state = ?", state.String()).
		Order("project_id").
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, pgerr.Classify("get projects with parts in state", err)
	}

	return ids, nil
}
