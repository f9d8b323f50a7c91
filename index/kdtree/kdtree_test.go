package kdtree

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/flanngo/distance"
	"github.com/hupe1980/flanngo/index"
	"github.com/hupe1980/flanngo/index/linear"
	"github.com/hupe1980/flanngo/util"
)

func TestBuild(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		tree, err := Build([][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}})
		require.NoError(t, err)
		assert.Equal(t, 4, tree.Size())
		assert.Equal(t, 2, tree.Dimension())
	})

	t.Run("Empty dataset", func(t *testing.T) {
		_, err := Build(nil)
		assert.ErrorIs(t, err, index.ErrEmptyDataset)

		_, err = Build([][]float64{})
		assert.ErrorIs(t, err, index.ErrEmptyDataset)
	})

	t.Run("Mismatched dimensions", func(t *testing.T) {
		_, err := Build([][]float64{{0, 0}, {1, 1, 1}})

		var dm *index.ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 3, dm.Actual)
	})

	t.Run("Zero-length vectors", func(t *testing.T) {
		_, err := Build([][]float64{{}})

		var id *index.ErrInvalidDimension
		assert.ErrorAs(t, err, &id)
	})

	t.Run("Single point", func(t *testing.T) {
		tree, err := Build([][]float64{{1, 2, 3}})
		require.NoError(t, err)

		results, err := tree.KNNSearch([]float64{1, 2, 3}, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, uint32(0), results[0].ID)
		assert.Equal(t, 0.0, results[0].Distance)
	})

	t.Run("Does not alias input", func(t *testing.T) {
		data := [][]float64{{0, 0}, {1, 1}}
		tree, err := Build(data)
		require.NoError(t, err)

		data[1][0] = 100

		results, err := tree.KNNSearch([]float64{1, 1}, 1)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), results[0].ID)
		assert.Equal(t, 0.0, results[0].Distance)
	})
}

func TestAdd(t *testing.T) {
	tree, err := Build([][]float64{{0, 0}, {1, 1}})
	require.NoError(t, err)

	err = tree.Add([][]float64{{2, 2}})
	assert.ErrorIs(t, err, index.ErrImmutableIndex)

	// The failed Add must leave the tree queryable and unchanged.
	assert.Equal(t, 2, tree.Size())

	results, err := tree.KNNSearch([]float64{0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestKNNSearch(t *testing.T) {
	tree, err := Build([][]float64{{0, 0}, {1, 1}, {2, 2}, {5, 5}})
	require.NoError(t, err)

	t.Run("End to end", func(t *testing.T) {
		results, err := tree.KNNSearch([]float64{1, 1}, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, uint32(1), results[0].ID)
		assert.Equal(t, 0.0, results[0].Distance)

		assert.Contains(t, []uint32{0, 2}, results[1].ID)
		assert.InDelta(t, math.Sqrt2, results[1].Distance, 1e-9)
	})

	t.Run("Zero k", func(t *testing.T) {
		results, err := tree.KNNSearch([]float64{1, 1}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("K larger than size", func(t *testing.T) {
		results, err := tree.KNNSearch([]float64{1, 1}, 100)
		require.NoError(t, err)
		assert.Len(t, results, 4)
	})

	t.Run("Dimension mismatch", func(t *testing.T) {
		_, err := tree.KNNSearch([]float64{1, 1, 1}, 2)

		var dm *index.ErrDimensionMismatch
		assert.ErrorAs(t, err, &dm)
	})

	t.Run("Sorted ascending", func(t *testing.T) {
		results, err := tree.KNNSearch([]float64{3, 3}, 4)
		require.NoError(t, err)
		assert.True(t, sort.SliceIsSorted(results, func(i, j int) bool {
			return results[i].Distance < results[j].Distance
		}))
	})
}

func TestRadiusSearch(t *testing.T) {
	tree, err := Build([][]float64{{0, 0}, {1, 1}, {2, 2}, {5, 5}})
	require.NoError(t, err)

	t.Run("End to end", func(t *testing.T) {
		results, err := tree.RadiusSearch([]float64{1, 1}, 1.0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, uint32(1), results[0].ID)
		assert.Equal(t, 0.0, results[0].Distance)
	})

	t.Run("Wide radius", func(t *testing.T) {
		results, err := tree.RadiusSearch([]float64{1, 1}, 100.0)
		require.NoError(t, err)
		assert.Len(t, results, 4)
	})

	t.Run("No matches", func(t *testing.T) {
		results, err := tree.RadiusSearch([]float64{-10, -10}, 1.0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Dimension mismatch", func(t *testing.T) {
		_, err := tree.RadiusSearch([]float64{1}, 1.0)

		var dm *index.ErrDimensionMismatch
		assert.ErrorAs(t, err, &dm)
	})
}

// resultIDs collects the identity set of a result list.
func resultIDs(results []index.SearchResult) map[uint32]struct{} {
	ids := make(map[uint32]struct{}, len(results))
	for _, r := range results {
		ids[r.ID] = struct{}{}
	}

	return ids
}

func TestExactnessAgainstLinear(t *testing.T) {
	rng := util.NewRNG(42)
	dataset := rng.GenerateRandomVectors(200, 5)

	tree, err := Build(dataset)
	require.NoError(t, err)

	oracle, err := linear.New(func(o *linear.Options) { o.Dimension = 5 })
	require.NoError(t, err)
	require.NoError(t, oracle.Add(dataset))

	queries := rng.GenerateRandomVectors(25, 5)

	for _, k := range []int{1, 3, 10, 200} {
		for _, q := range queries {
			treeResults, err := tree.KNNSearch(q, k)
			require.NoError(t, err)

			oracleResults, err := oracle.KNNSearch(q, k)
			require.NoError(t, err)

			require.Len(t, treeResults, len(oracleResults))
			assert.Equal(t, resultIDs(oracleResults), resultIDs(treeResults))

			for i := range treeResults {
				assert.InDelta(t, oracleResults[i].Distance, treeResults[i].Distance, 1e-9)
			}
		}
	}

	for _, radius := range []float64{0.1, 0.5, 1.0} {
		for _, q := range queries {
			treeResults, err := tree.RadiusSearch(q, radius)
			require.NoError(t, err)

			oracleResults, err := oracle.RadiusSearch(q, radius)
			require.NoError(t, err)

			assert.Equal(t, resultIDs(oracleResults), resultIDs(treeResults))
		}
	}
}

func TestIdempotentBuild(t *testing.T) {
	rng := util.NewRNG(7)
	dataset := rng.GenerateRandomVectors(100, 3)

	a, err := Build(dataset)
	require.NoError(t, err)

	b, err := Build(dataset)
	require.NoError(t, err)

	for _, q := range rng.GenerateRandomVectors(10, 3) {
		ra, err := a.KNNSearch(q, 5)
		require.NoError(t, err)

		rb, err := b.KNNSearch(q, 5)
		require.NoError(t, err)

		assert.Equal(t, ra, rb)
	}
}

func TestDuplicatePoints(t *testing.T) {
	tree, err := Build([][]float64{{1, 1}, {1, 1}, {1, 1}, {2, 2}})
	require.NoError(t, err)

	results, err := tree.KNNSearch([]float64{1, 1}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// All three duplicates come back, each at distance zero.
	assert.Equal(t, map[uint32]struct{}{0: {}, 1: {}, 2: {}}, resultIDs(results))
	for _, r := range results {
		assert.Equal(t, 0.0, r.Distance)
	}
}

func TestFailedQueryLeavesStateIntact(t *testing.T) {
	tree, err := Build([][]float64{{0, 0}, {3, 4}})
	require.NoError(t, err)

	_, err = tree.KNNSearch([]float64{1}, 1)
	require.Error(t, err)

	results, err := tree.KNNSearch([]float64{0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.InDelta(t, distance.Euclidean([]float64{0, 0}, []float64{3, 4}), results[1].Distance, 1e-9)
}
