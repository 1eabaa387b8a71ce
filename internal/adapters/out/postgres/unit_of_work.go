// Package postgres provides the GORM-based Unit of Work and schema migration.
//
// A unit of work hands out repositories bound to its transaction once Begin has
// been called, and to the plain connection before that. Each command creates a
// fresh unit of work; instances are not safe for concurrent use.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	p, err := uow.PartRepository().GetForUpdate(ctx, partID)
//	if err != nil {
//	    return err
//	}
//	// mutate p, then
//	if err := uow.PartRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Row locks taken with GetForUpdate are released on Commit or Rollback. Code that
// locks both a part and an operator locks the part first.
package postgres

import (
	"context"

	"shopfloor/internal/adapters/out/postgres/operatorrepo"
	"shopfloor/internal/adapters/out/postgres/partrepo"
	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/adapters/out/postgres/projectrepo"
	"shopfloor/internal/adapters/out/postgres/trackingrepo"
	"shopfloor/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	Key       string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create without narrowing the result to the port.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []TrackedAggregate
}

// Begin starts a transaction. Calling Begin again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Classify("begin transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction when none is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Classify("commit transaction", err)
}

// Rollback discards the transaction and forgets the aggregates tracked in it.
// Returns gorm.ErrInvalidTransaction when none is open, which makes a deferred
// Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// PartRepository returns a part repository bound to the current transaction, if any.
func (uow *GormUnitOfWork) PartRepository() ports.PartRepository {
	return partrepo.NewGormPartRepository(uow.conn(), uow)
}

// TaskTrackingRepository returns a task tracking repository bound to the current transaction, if any.
func (uow *GormUnitOfWork) TaskTrackingRepository() ports.TaskTrackingRepository {
	return trackingrepo.NewGormTaskTrackingRepository(uow.conn(), uow)
}

// ProjectRepository returns a project repository bound to the current transaction, if any.
func (uow *GormUnitOfWork) ProjectRepository() ports.ProjectRepository {
	return projectrepo.NewGormProjectRepository(uow.conn(), uow)
}

// OperatorRepository returns an operator repository bound to the current transaction, if any.
func (uow *GormUnitOfWork) OperatorRepository() ports.OperatorRepository {
	return operatorrepo.NewGormOperatorRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written through one of the repositories.
// Writing the same key again replaces the earlier entry.
func (uow *GormUnitOfWork) TrackAggregate(key string, aggregate any) {
	for i := range uow.trackedAggregates {
		if uow.trackedAggregates[i].Key == key {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{Key: key, Aggregate: aggregate})
}

// TrackedAggregates returns the aggregates written so far, in first-write order.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	out := make([]TrackedAggregate, len(uow.trackedAggregates))
	copy(out, uow.trackedAggregates)
	return out
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
