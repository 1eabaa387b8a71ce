// Package pgerr classifies PostgreSQL driver failures into the engine's error
// kinds. Repositories run every unexpected error through Classify so callers can
// tell a retryable storage outage from a bug.
package pgerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"shopfloor/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// Names of the partial unique indexes guarding open task trackings.
const (
	ActivePartIndex     = "ux_task_trackings_active_part"
	ActiveOperatorIndex = "ux_task_trackings_active_operator"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeLockNotAvailable    = "55P03"
)

// Classes of SQLSTATE codes that mean the store, not the request, is at fault.
var unavailableClasses = []string{
	"08", // connection exception
	"40", // transaction rollback: serialization failure, deadlock
	"53", // insufficient resources
	"57", // operator intervention: shutdown, query canceled
	"58", // system error
}

// UniqueViolation reports whether err is a unique violation of constraint.
func UniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == constraint
}

// Classify wraps err for operation. Connectivity, timeout, lock and transaction
// conflicts become StorageUnavailableError; integrity violations become
// validation errors; errors already carrying an engine kind pass through.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errs.KindOf(err) != errs.KindInternal {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeForeignKeyViolation:
			return errs.NewValueIsInvalidErrorWithCause(constraintParam(pgErr), err)
		case pgErr.Code == codeCheckViolation:
			return errs.NewValueIsInvalidErrorWithCause(constraintParam(pgErr), err)
		case pgErr.Code == codeLockNotAvailable, unavailableClass(pgErr.Code):
			return errs.NewStorageUnavailableError(operation, err)
		default:
			return fmt.Errorf("%s: %w", operation, err)
		}
	}

	if unreachable(err) {
		return errs.NewStorageUnavailableError(operation, err)
	}

	return fmt.Errorf("%s: %w", operation, err)
}

func unavailableClass(code string) bool {
	for _, class := range unavailableClasses {
		if strings.HasPrefix(code, class) {
			return true
		}
	}
	return false
}

func unreachable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func constraintParam(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return pgErr.TableName
}
