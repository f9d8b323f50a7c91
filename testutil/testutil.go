// Package testutil provides testing helpers for flanngo.
//
// This package is intended for use in tests and benchmarks only. It provides
// exact ground-truth search and recall computation for verifying the
// approximate strategies against the exact ones.
package testutil

import (
	"github.com/hupe1980/flanngo/distance"
	"github.com/hupe1980/flanngo/index"
)

// ExactTopK computes the ground-truth k nearest neighbors of query in dataset
// by brute force, ascending by distance with ascending-ID tie-break.
func ExactTopK(query []float64, dataset [][]float64, k int, fn distance.Func) []index.SearchResult {
	results := make([]index.SearchResult, 0, len(dataset))
	for i, v := range dataset {
		results = append(results, index.SearchResult{ID: uint32(i), Distance: fn(query, v)})
	}

	index.SortResults(results)

	if len(results) > k {
		results = results[:k]
	}

	return results
}

// ComputeRecall returns the fraction of exact result identities present in
// the approximate results. An empty exact set yields a recall of 1.
func ComputeRecall(approx, exact []index.SearchResult) float64 {
	if len(exact) == 0 {
		return 1
	}

	found := make(map[uint32]struct{}, len(approx))
	for _, r := range approx {
		found[r.ID] = struct{}{}
	}

	hits := 0
	for _, r := range exact {
		if _, ok := found[r.ID]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(exact))
}
