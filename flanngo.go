package flanngo

import (
	"fmt"

	"github.com/hupe1980/flanngo/index"
	"github.com/hupe1980/flanngo/index/kdtree"
	"github.com/hupe1980/flanngo/index/linear"
	"github.com/hupe1980/flanngo/index/lsh"
)

// SearchResult represents a single search hit: the 0-based insertion-order
// identity of the matched vector and its exact distance to the query.
type SearchResult = index.SearchResult

// Algorithm identifies the concrete search strategy backing an Index.
type Algorithm int

const (
	AlgorithmKDTree Algorithm = iota
	AlgorithmLSH
	AlgorithmLinear
)

// String returns a string representation of the Algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmKDTree:
		return "KDTree"
	case AlgorithmLSH:
		return "LSH"
	case AlgorithmLinear:
		return "Linear"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// Index is the unified facade over the three search strategies. Exactly one
// strategy is active, bound at construction; the strategy set is closed, so
// dispatch is a plain switch rather than open-ended virtual dispatch.
type Index struct {
	algorithm Algorithm
	kdtree    *kdtree.KDTree
	lsh       *lsh.LSH
	linear    *linear.Linear
	logger    *Logger
}

// NewKDTree builds an exact KD-tree index from a non-empty set of
// same-dimension vectors. The resulting index is immutable: Add fails with
// ErrImmutableIndex.
func NewKDTree(vectors [][]float64, optFns ...Option) (*Index, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	t, err := kdtree.Build(vectors)
	if err != nil {
		err = translateError(err)
		o.logger.LogBuild(AlgorithmKDTree, 0, 0, err)

		return nil, err
	}

	o.logger.LogBuild(AlgorithmKDTree, t.Size(), t.Dimension(), nil)

	return &Index{algorithm: AlgorithmKDTree, kdtree: t, logger: o.logger}, nil
}

// NewLSH creates an approximate LSH index for vectors of the given dimension,
// with numTables independent hash tables of numBits signature bits each. The
// index starts empty and grows via Add.
func NewLSH(dimension, numTables, numBits int, optFns ...Option) (*Index, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	l, err := lsh.New(func(lo *lsh.Options) {
		lo.Dimension = dimension
		lo.NumTables = numTables
		lo.NumBits = numBits
		lo.Seed = o.lshSeed
	})
	if err != nil {
		err = translateError(err)
		o.logger.LogBuild(AlgorithmLSH, 0, 0, err)

		return nil, err
	}

	o.logger.LogBuild(AlgorithmLSH, 0, dimension, nil)

	return &Index{algorithm: AlgorithmLSH, lsh: l, logger: o.logger}, nil
}

// NewLinear creates an exact exhaustive-scan index for vectors of the given
// dimension. The index starts empty and grows via Add.
func NewLinear(dimension int, optFns ...Option) (*Index, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	l, err := linear.New(func(lo *linear.Options) {
		lo.Dimension = dimension
	})
	if err != nil {
		err = translateError(err)
		o.logger.LogBuild(AlgorithmLinear, 0, 0, err)

		return nil, err
	}

	o.logger.LogBuild(AlgorithmLinear, 0, dimension, nil)

	return &Index{algorithm: AlgorithmLinear, linear: l, logger: o.logger}, nil
}

// Algorithm returns the strategy bound at construction.
func (i *Index) Algorithm() Algorithm {
	return i.algorithm
}

// strategy returns the active concrete index.
func (i *Index) strategy() index.Index {
	switch i.algorithm {
	case AlgorithmKDTree:
		return i.kdtree
	case AlgorithmLSH:
		return i.lsh
	default:
		return i.linear
	}
}

// Add appends vectors to the index, assigning identities in insertion order.
// It fails with ErrImmutableIndex on a KD-tree-backed index: the median-split
// balance guarantee only holds for a one-shot build.
func (i *Index) Add(vectors [][]float64) error {
	err := translateError(i.strategy().Add(vectors))
	i.logger.LogAdd(len(vectors), err)

	return err
}

// KNNSearch returns up to k nearest stored vectors, ascending by distance.
// KD-tree and linear results are exact with exactly min(k, Size()) entries;
// LSH may return fewer.
func (i *Index) KNNSearch(query []float64, k int) ([]SearchResult, error) {
	results, err := i.strategy().KNNSearch(query, k)
	err = translateError(err)
	i.logger.LogSearch(k, len(results), err)

	return results, err
}

// RadiusSearch returns stored vectors within radius of the query. KD-tree and
// linear results are exact and sorted ascending by distance; LSH results are
// limited to hashed candidates and carry no order guarantee.
func (i *Index) RadiusSearch(query []float64, radius float64) ([]SearchResult, error) {
	results, err := i.strategy().RadiusSearch(query, radius)
	err = translateError(err)
	i.logger.LogRadiusSearch(radius, len(results), err)

	return results, err
}

// Size returns the number of stored vectors.
func (i *Index) Size() int {
	return i.strategy().Size()
}

// Dimension returns the fixed vector dimensionality of the index.
func (i *Index) Dimension() int {
	return i.strategy().Dimension()
}
