package flanngo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/flanngo/index"
)

var (
	// ErrEmptyDataset is returned when a one-shot build receives no vectors.
	ErrEmptyDataset = errors.New("dataset cannot be empty")

	// ErrImmutableIndex is returned when Add is called on an index whose
	// strategy is fixed at construction time (KD-tree).
	ErrImmutableIndex = errors.New("cannot add data after construction")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates an invalid configured dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// translateError normalizes strategy-package errors to the root-level types
// so callers only match against this package.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}

	var id *index.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrInvalidDimension{Dimension: id.Dimension, cause: err}
	}

	if errors.Is(err, index.ErrEmptyDataset) {
		return fmt.Errorf("%w: %w", ErrEmptyDataset, err)
	}

	if errors.Is(err, index.ErrImmutableIndex) {
		return fmt.Errorf("%w: %w", ErrImmutableIndex, err)
	}

	return err
}
