// Package index provides the contract shared by all flanngo search strategies.
package index

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyDataset is returned when a one-shot build receives no vectors.
	ErrEmptyDataset = errors.New("dataset cannot be empty")

	// ErrImmutableIndex is returned when Add is called on a strategy that is
	// fixed at construction time (KD-tree).
	ErrImmutableIndex = errors.New("cannot add data after construction")
)

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension is a named error type for an unusable configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

// Error returns the error message for an invalid dimension.
func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// ID is the 0-based insertion-order identity of the matched vector.
	ID uint32

	// Distance is the exact distance between the query and the matched vector.
	Distance float64
}

// Index represents a nearest-neighbor search strategy.
type Index interface {
	// Add appends vectors to the index, assigning identities in insertion order.
	Add(vectors [][]float64) error

	// KNNSearch returns the k nearest stored vectors, ascending by distance.
	KNNSearch(query []float64, k int) ([]SearchResult, error)

	// RadiusSearch returns all stored vectors within radius of the query.
	RadiusSearch(query []float64, radius float64) ([]SearchResult, error)

	// Size returns the number of stored vectors.
	Size() int

	// Dimension returns the fixed vector dimensionality of the index.
	Dimension() int
}

// ValidateDimension checks that a single vector matches the expected dimension.
func ValidateDimension(expected int, v []float64) error {
	if len(v) != expected {
		return &ErrDimensionMismatch{Expected: expected, Actual: len(v)}
	}

	return nil
}

// ValidateDataset checks that every vector matches the expected dimension.
// It must run before any vector is stored so that a rejected batch has no
// effect on index state.
func ValidateDataset(expected int, vectors [][]float64) error {
	for _, v := range vectors {
		if err := ValidateDimension(expected, v); err != nil {
			return err
		}
	}

	return nil
}

// SortResults orders results ascending by distance, with ascending ID as a
// deterministic tie-breaker.
func SortResults(results []SearchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}

		return results[i].ID < results[j].ID
	})
}

// CloneVectors deep-copies a vector batch so an index never aliases
// caller-owned storage.
func CloneVectors(vectors [][]float64) [][]float64 {
	cloned := make([][]float64, len(vectors))
	for i, v := range vectors {
		cloned[i] = append(make([]float64, 0, len(v)), v...)
	}

	return cloned
}
