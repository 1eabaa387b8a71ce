package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// PartRepository returns a PartRepository bound to the current transaction.
	PartRepository() PartRepository

	// TaskTrackingRepository returns a TaskTrackingRepository bound to the current transaction.
	TaskTrackingRepository() TaskTrackingRepository

	// ProjectRepository returns a ProjectRepository bound to the current transaction.
	ProjectRepository() ProjectRepository

	// OperatorRepository returns an OperatorRepository bound to the current transaction.
	OperatorRepository() OperatorRepository
}
