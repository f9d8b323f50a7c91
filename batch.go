package flanngo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchKNNSearch runs KNNSearch for every query concurrently and returns the
// results positionally aligned with the queries. Queries never mutate index
// state, so fanning out over an index that is no longer being mutated is
// safe. The context cancels remaining queries between, not within, searches.
func (i *Index) BatchKNNSearch(ctx context.Context, queries [][]float64, k int) ([][]SearchResult, error) {
	results := make([][]SearchResult, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for qi, query := range queries {
		qi, query := qi, query
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := i.KNNSearch(query, k)
			if err != nil {
				return err
			}

			results[qi] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// BatchRadiusSearch runs RadiusSearch for every query concurrently and
// returns the results positionally aligned with the queries.
func (i *Index) BatchRadiusSearch(ctx context.Context, queries [][]float64, radius float64) ([][]SearchResult, error) {
	results := make([][]SearchResult, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for qi, query := range queries {
		qi, query := qi, query
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := i.RadiusSearch(query, radius)
			if err != nil {
				return err
			}

			results[qi] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
