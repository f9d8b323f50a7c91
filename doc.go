// Package flanngo provides in-memory nearest-neighbor search indexes for Go.
//
// Flanngo answers "which stored vectors are closest to this query vector",
// exactly or approximately, behind a single facade:
//
//   - KD-Tree: exact search over a one-shot median-split space partition.
//     Built once from a fixed dataset; immutable afterwards.
//   - LSH: approximate search via random-hyperplane signatures across
//     multiple independent hash tables. Grows incrementally.
//   - Linear: exact exhaustive scan; the correctness baseline. Grows
//     incrementally.
//
// All strategies expose the same query contract, so callers hold one type
// regardless of the strategy chosen at construction:
//
//	idx, err := flanngo.NewKDTree([][]float64{{0, 0}, {1, 1}, {2, 2}, {5, 5}})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	results, err := idx.KNNSearch([]float64{1, 1}, 2)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// results[0] is identity 1 at distance 0.
//
// Identities are 0-based insertion-order positions, stable for the lifetime
// of the index; they are the only way to correlate results back to caller
// records.
//
// # Concurrency
//
// No operation locks internally. Mutation (Add, construction) must be
// serialized by the caller; concurrent read-only queries against an index
// that is no longer being mutated are safe, because queries never mutate
// state. BatchKNNSearch and BatchRadiusSearch rely on exactly that guarantee.
package flanngo
