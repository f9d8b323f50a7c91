// Package lsh provides an approximate nearest-neighbor index based on
// random-hyperplane locality-sensitive hashing.
//
// The index owns NumTables independent hash tables. Each table hashes a
// vector to a bit-signature: bit i is set iff the dot product with the
// table's i-th random projection is positive. Vectors sharing a signature
// land in the same bucket and become search candidates. False negatives are
// possible and expected; that is the speed/accuracy tradeoff against the
// exact strategies.
package lsh

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/flanngo/distance"
	"github.com/hupe1980/flanngo/index"
	"github.com/hupe1980/flanngo/util"
)

// Compile-time check to ensure LSH satisfies the index interface.
var _ index.Index = (*LSH)(nil)

// Options contains configuration options for the LSH index.
type Options struct {
	// Dimension is the fixed vector dimensionality for this index.
	// It must be > 0 and is enforced for all adds and searches.
	Dimension int

	// NumTables is the number of independent hash tables. More tables raise
	// recall at linear cost in hashing and memory.
	NumTables int

	// NumBits is the number of projection bits per table. More bits mean
	// smaller buckets: higher precision, lower recall. Bits beyond 63 alias
	// onto a zero bit and only add hashing cost.
	NumBits int

	// Seed seeds the per-instance random projection generator. Two instances
	// with equal Dimension, NumTables, NumBits and Seed produce identical
	// signatures.
	Seed int64
}

// DefaultOptions contains the default configuration options for the LSH index.
var DefaultOptions = Options{
	NumTables: 8,
	NumBits:   16,
	Seed:      1,
}

// LSH represents an approximate nearest-neighbor index over float64 vectors.
//
// A query issued before the first Add returns an empty result set rather than
// an error: the projection families do not exist yet, so no bucket can match.
type LSH struct {
	data        [][]float64
	tables      []map[uint64]*roaring.Bitmap
	projections [][][]float64 // [table][bit]unit vector; nil until first Add, frozen after
	rng         *util.RNG
	opts        Options
}

// New creates a new instance of the LSH index.
// Dimension is required and must be set at creation time.
func New(optFns ...func(o *Options)) (*LSH, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dimension <= 0 {
		return nil, &index.ErrInvalidDimension{Dimension: opts.Dimension}
	}

	tables := make([]map[uint64]*roaring.Bitmap, opts.NumTables)
	for i := range tables {
		tables[i] = make(map[uint64]*roaring.Bitmap)
	}

	return &LSH{
		data:   make([][]float64, 0),
		tables: tables,
		rng:    util.NewRNG(opts.Seed),
		opts:   opts,
	}, nil
}

// Add appends vectors to the index, assigning identities in insertion order.
// The first call generates the random projection families; they are frozen
// afterwards so signatures stay comparable across adds and queries.
func (l *LSH) Add(vectors [][]float64) error {
	if len(vectors) == 0 {
		return nil
	}

	if err := index.ValidateDataset(l.opts.Dimension, vectors); err != nil {
		return err
	}

	if l.projections == nil {
		l.generateProjections()
	}

	start := uint32(len(l.data))
	l.data = append(l.data, index.CloneVectors(vectors)...)

	for ti := range l.tables {
		for offset, v := range vectors {
			sig := l.signature(v, ti)

			bucket := l.tables[ti][sig]
			if bucket == nil {
				bucket = roaring.New()
				l.tables[ti][sig] = bucket
			}

			bucket.Add(start + uint32(offset))
		}
	}

	return nil
}

// generateProjections draws one unit vector per (table, bit) pair from the
// per-instance RNG.
func (l *LSH) generateProjections() {
	l.projections = make([][][]float64, l.opts.NumTables)

	for ti := range l.projections {
		family := make([][]float64, l.opts.NumBits)
		for bi := range family {
			family[bi] = l.rng.UnitVector(l.opts.Dimension)
		}

		l.projections[ti] = family
	}
}

// signature computes the bit-signature of v under the given table's family.
func (l *LSH) signature(v []float64, table int) uint64 {
	var sig uint64

	for bi, projection := range l.projections[table] {
		if distance.Dot(v, projection) > 0 {
			sig |= 1 << uint(bi)
		}
	}

	return sig
}

// candidates gathers the union of bucket members matching the query's
// signature in every table.
func (l *LSH) candidates(query []float64) *roaring.Bitmap {
	if l.projections == nil {
		return roaring.New()
	}

	buckets := make([]*roaring.Bitmap, 0, len(l.tables))

	for ti := range l.tables {
		if bucket, ok := l.tables[ti][l.signature(query, ti)]; ok {
			buckets = append(buckets, bucket)
		}
	}

	if len(buckets) == 0 {
		return roaring.New()
	}

	return roaring.FastOr(buckets...)
}

// KNNSearch returns up to k approximate nearest neighbors, ascending by exact
// Euclidean distance. Fewer than k results (including none) are returned when
// hashing yields fewer candidates; there is no fallback to a full scan.
func (l *LSH) KNNSearch(query []float64, k int) ([]index.SearchResult, error) {
	if err := index.ValidateDimension(l.opts.Dimension, query); err != nil {
		return nil, err
	}

	if k <= 0 {
		return []index.SearchResult{}, nil
	}

	candidates := l.candidates(query)
	results := make([]index.SearchResult, 0, candidates.GetCardinality())

	it := candidates.Iterator()
	for it.HasNext() {
		id := it.Next()
		results = append(results, index.SearchResult{
			ID:       id,
			Distance: distance.Euclidean(query, l.data[id]),
		})
	}

	index.SortResults(results)

	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// RadiusSearch returns the hashed candidates whose exact Euclidean distance
// is within radius, in candidate-discovery (ascending identity) order.
func (l *LSH) RadiusSearch(query []float64, radius float64) ([]index.SearchResult, error) {
	if err := index.ValidateDimension(l.opts.Dimension, query); err != nil {
		return nil, err
	}

	results := make([]index.SearchResult, 0)

	it := l.candidates(query).Iterator()
	for it.HasNext() {
		id := it.Next()

		if dist := distance.Euclidean(query, l.data[id]); dist <= radius {
			results = append(results, index.SearchResult{ID: id, Distance: dist})
		}
	}

	return results, nil
}

// Size returns the number of stored vectors.
func (l *LSH) Size() int {
	return len(l.data)
}

// Dimension returns the fixed vector dimensionality of the index.
func (l *LSH) Dimension() int {
	return l.opts.Dimension
}
