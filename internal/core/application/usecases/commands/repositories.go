// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shopfloor/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PartRepoFactory provides access to the part repository within a transaction.
	PartRepoFactory interface {
		PartRepository() ports.PartRepository
	}

	// TrackingRepoFactory provides access to the task tracking repository within a transaction.
	TrackingRepoFactory interface {
		TaskTrackingRepository() ports.TaskTrackingRepository
	}

	// ProjectRepoFactory provides access to the project repository within a transaction.
	ProjectRepoFactory interface {
		ProjectRepository() ports.ProjectRepository
	}

	// OperatorRepoFactory provides access to the operator repository within a transaction.
	OperatorRepoFactory interface {
		OperatorRepository() ports.OperatorRepository
	}

	// AssignmentUoW covers taking, completing and manually transitioning a part.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   p, err := uow.PartRepository().GetForUpdate(ctx, partID)        // lock part first
	//   o, err := uow.OperatorRepository().GetForUpdate(ctx, operatorID) // then operator
	//   // ... open or close the tracking
	//
	//   err = uow.Commit(ctx)
	AssignmentUoW interface {
		TxManager
		PartRepoFactory
		TrackingRepoFactory
		OperatorRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// PartUoW manages transactions for part-only operations.
	PartUoW interface {
		TxManager
		PartRepoFactory
	}

	// PartUoWFactory creates new part unit of work instances.
	PartUoWFactory interface {
		Create() PartUoW
	}

	// ProjectUoW manages transactions spanning a project and its parts.
	ProjectUoW interface {
		TxManager
		ProjectRepoFactory
		PartRepoFactory
	}

	// ProjectUoWFactory creates new project unit of work instances.
	ProjectUoWFactory interface {
		Create() ProjectUoW
	}

	// OperatorUoW manages transactions for operator-only operations.
	OperatorUoW interface {
		TxManager
		OperatorRepoFactory
	}

	// OperatorUoWFactory creates new operator unit of work instances.
	OperatorUoWFactory interface {
		Create() OperatorUoW
	}

	// TrackingUoW manages transactions for tracking-only operations.
	TrackingUoW interface {
		TxManager
		TrackingRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}
)
