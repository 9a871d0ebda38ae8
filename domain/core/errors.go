package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)

	// Dataset shape errors
	ErrRaggedColumns   = errors.New("columns have different lengths")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrEmptyColumnName = errors.New("column name cannot be empty")

	// Loader errors
	ErrUnsupportedSource = errors.New("unsupported dataset source")
)

// Error constructors with context
func NewNotFoundError(resource error, name string) error {
	return fmt.Errorf("%w %q", resource, name)
}

func NewColumnNotFoundError(dataset, column string) error {
	return fmt.Errorf("%w %q in dataset %q", ErrColumnNotFound, column, dataset)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsShapeError(err error) bool {
	return errors.Is(err, ErrRaggedColumns) ||
		errors.Is(err, ErrDuplicateColumn) ||
		errors.Is(err, ErrEmptyColumnName)
}
