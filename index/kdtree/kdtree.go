// Package kdtree provides an exact nearest-neighbor index backed by a
// depth-cycling, median-split k-d tree.
//
// The tree is built once from an immutable snapshot of the dataset and cannot
// grow afterwards: the balance guarantee of the median split only holds for a
// one-shot build. Add always returns index.ErrImmutableIndex.
package kdtree

import (
	"math"
	"sort"

	"github.com/hupe1980/flanngo/distance"
	"github.com/hupe1980/flanngo/index"
	"github.com/hupe1980/flanngo/internal/queue"
)

// Compile-time check to ensure KDTree satisfies the index interface.
var _ index.Index = (*KDTree)(nil)

// node is a tree node owning its subtrees outright. The structure is acyclic
// and destructible depth-first; no back-references exist.
type node struct {
	pointIdx   uint32
	splitDim   int
	splitValue float64
	left       *node
	right      *node
}

// KDTree represents an exact k-d tree index over float64 vectors.
type KDTree struct {
	root      *node
	dimension int
	data      [][]float64
}

// Build constructs a KDTree from a non-empty set of same-dimension vectors.
// The tree retains a copy of the dataset for distance evaluation; identities
// are assigned in input order.
func Build(vectors [][]float64) (*KDTree, error) {
	if len(vectors) == 0 {
		return nil, index.ErrEmptyDataset
	}

	dimension := len(vectors[0])
	if dimension == 0 {
		return nil, &index.ErrInvalidDimension{Dimension: dimension}
	}

	if err := index.ValidateDataset(dimension, vectors); err != nil {
		return nil, err
	}

	t := &KDTree{
		dimension: dimension,
		data:      index.CloneVectors(vectors),
	}

	indices := make([]uint32, len(vectors))
	for i := range indices {
		indices[i] = uint32(i)
	}

	t.root = t.build(indices, 0)

	return t, nil
}

// build recursively partitions the index set. Each call strictly shrinks its
// index set, which guarantees termination.
func (t *KDTree) build(indices []uint32, depth int) *node {
	if len(indices) == 0 {
		return nil
	}

	splitDim := depth % t.dimension

	// Stable sort so equal coordinates keep their relative order; ties are
	// not re-examined.
	sort.SliceStable(indices, func(i, j int) bool {
		return t.data[indices[i]][splitDim] < t.data[indices[j]][splitDim]
	})

	median := len(indices) / 2

	n := &node{
		pointIdx:   indices[median],
		splitDim:   splitDim,
		splitValue: t.data[indices[median]][splitDim],
	}

	n.left = t.build(indices[:median], depth+1)
	n.right = t.build(indices[median+1:], depth+1)

	return n
}

// Add always fails: the tree is immutable after construction. Adding vectors
// requires building a new tree.
func (t *KDTree) Add(vectors [][]float64) error {
	return index.ErrImmutableIndex
}

// KNNSearch returns the k exact nearest neighbors of the query, ascending by
// Euclidean distance. k = 0 yields an empty result.
func (t *KDTree) KNNSearch(query []float64, k int) ([]index.SearchResult, error) {
	if err := index.ValidateDimension(t.dimension, query); err != nil {
		return nil, err
	}

	if k <= 0 {
		return []index.SearchResult{}, nil
	}

	h := queue.New(min(k, len(t.data)))
	t.knn(t.root, query, k, h)

	return h.Sorted(), nil
}

func (t *KDTree) knn(n *node, query []float64, k int, h *queue.ResultHeap) {
	if n == nil {
		return
	}

	dist := distance.Euclidean(query, t.data[n.pointIdx])
	h.PushBounded(index.SearchResult{ID: n.pointIdx, Distance: dist}, k)

	// Descend into the child on the query's side of the splitting hyperplane
	// first; it is the more promising half.
	diff := query[n.splitDim] - n.splitValue

	first, second := n.left, n.right
	if diff >= 0 {
		first, second = n.right, n.left
	}

	t.knn(first, query, k, h)

	// The far child can only contain a closer point if the hyperplane itself
	// is closer than the worst retained candidate, or the candidate set is
	// not yet full.
	worst, ok := h.Top()
	if h.Len() < k || (ok && math.Abs(diff) < worst.Distance) {
		t.knn(second, query, k, h)
	}
}

// RadiusSearch returns every stored vector within radius of the query,
// ascending by Euclidean distance.
func (t *KDTree) RadiusSearch(query []float64, radius float64) ([]index.SearchResult, error) {
	if err := index.ValidateDimension(t.dimension, query); err != nil {
		return nil, err
	}

	results := make([]index.SearchResult, 0)
	t.radius(t.root, query, radius, &results)
	index.SortResults(results)

	return results, nil
}

func (t *KDTree) radius(n *node, query []float64, radius float64, out *[]index.SearchResult) {
	if n == nil {
		return
	}

	dist := distance.Euclidean(query, t.data[n.pointIdx])
	if dist <= radius {
		*out = append(*out, index.SearchResult{ID: n.pointIdx, Distance: dist})
	}

	diff := query[n.splitDim] - n.splitValue

	near, far := n.left, n.right
	if diff >= 0 {
		near, far = n.right, n.left
	}

	t.radius(near, query, radius, out)

	// The far half can only intersect the search ball if the hyperplane is
	// within the radius.
	if math.Abs(diff) <= radius {
		t.radius(far, query, radius, out)
	}
}

// Size returns the number of stored vectors.
func (t *KDTree) Size() int {
	return len(t.data)
}

// Dimension returns the fixed vector dimensionality of the index.
func (t *KDTree) Dimension() int {
	return t.dimension
}
