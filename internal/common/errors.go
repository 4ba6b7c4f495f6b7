// Package common defines sentinel errors shared by the storage and service
// layers. Callers should use errors.Is to match these values; repositories
// keep the driver error in the chain next to the sentinel.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Constraint violations reported by the database engine.
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrNotNullViolation    = errors.New("not null constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)
