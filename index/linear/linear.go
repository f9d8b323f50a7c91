// Package linear provides an exact nearest-neighbor index that scans every
// stored vector. It is the correctness oracle for the other strategies and
// the sensible choice for datasets small enough that tree or hash overhead
// is not justified.
package linear

import (
	"github.com/hupe1980/flanngo/distance"
	"github.com/hupe1980/flanngo/index"
	"github.com/hupe1980/flanngo/internal/queue"
)

// Compile-time check to ensure Linear satisfies the index interface.
var _ index.Index = (*Linear)(nil)

// Options contains configuration options for the linear index.
type Options struct {
	// Dimension is the fixed vector dimensionality for this index.
	// It must be > 0 and is enforced for all adds and searches.
	Dimension int

	// Metric selects the distance metric. The other strategies are tied to
	// Euclidean distance; the linear scan works with any metric.
	Metric distance.Metric
}

// DefaultOptions contains the default configuration options for the linear index.
var DefaultOptions = Options{
	Metric: distance.MetricEuclidean,
}

// Linear represents an exhaustive-scan index over float64 vectors.
type Linear struct {
	data     [][]float64
	distFunc distance.Func
	opts     Options
}

// New creates a new instance of the linear index.
// Dimension is required and must be set at creation time.
func New(optFns ...func(o *Options)) (*Linear, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dimension <= 0 {
		return nil, &index.ErrInvalidDimension{Dimension: opts.Dimension}
	}

	distFunc, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, err
	}

	return &Linear{
		data:     make([][]float64, 0),
		distFunc: distFunc,
		opts:     opts,
	}, nil
}

// Add appends vectors to the index, assigning identities in insertion order.
func (l *Linear) Add(vectors [][]float64) error {
	if err := index.ValidateDataset(l.opts.Dimension, vectors); err != nil {
		return err
	}

	l.data = append(l.data, index.CloneVectors(vectors)...)

	return nil
}

// KNNSearch returns the k exact nearest neighbors of the query, ascending by
// distance. It returns exactly min(k, Size()) results.
func (l *Linear) KNNSearch(query []float64, k int) ([]index.SearchResult, error) {
	if err := index.ValidateDimension(l.opts.Dimension, query); err != nil {
		return nil, err
	}

	if k <= 0 {
		return []index.SearchResult{}, nil
	}

	h := queue.New(min(k, len(l.data)))

	for i, v := range l.data {
		h.PushBounded(index.SearchResult{ID: uint32(i), Distance: l.distFunc(query, v)}, k)
	}

	return h.Sorted(), nil
}

// RadiusSearch returns every stored vector within radius of the query,
// ascending by distance.
func (l *Linear) RadiusSearch(query []float64, radius float64) ([]index.SearchResult, error) {
	if err := index.ValidateDimension(l.opts.Dimension, query); err != nil {
		return nil, err
	}

	results := make([]index.SearchResult, 0)

	for i, v := range l.data {
		if dist := l.distFunc(query, v); dist <= radius {
			results = append(results, index.SearchResult{ID: uint32(i), Distance: dist})
		}
	}

	index.SortResults(results)

	return results, nil
}

// Size returns the number of stored vectors.
func (l *Linear) Size() int {
	return len(l.data)
}

// Dimension returns the fixed vector dimensionality of the index.
func (l *Linear) Dimension() int {
	return l.opts.Dimension
}
