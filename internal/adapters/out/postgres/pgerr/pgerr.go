// Package pgerr classifies PostgreSQL errors independently of the driver that
// produced them (pgx through gorm's postgres driver, or lib/pq).
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

func code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

func constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}

// IsUniqueViolation reports a duplicate key. A non-empty name restricts the
// match to that constraint or index.
func IsUniqueViolation(err error, name string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return name == ""
	}
	if code(err) != uniqueViolation {
		return false
	}
	return name == "" || constraint(err) == name
}

// IsRetryable reports errors after which the whole transaction may be retried.
func IsRetryable(err error) bool {
	switch code(err) {
	case serializationFailure, deadlockDetected:
		return true
	default:
		return false
	}
}
