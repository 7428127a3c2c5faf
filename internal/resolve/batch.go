package resolve

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"listing-engine/internal/rules"
)

// ResolveBatch resolves inputs concurrently with at most workers goroutines
// (GOMAXPROCS when workers <= 0). Results are in input order. A record
// failing to resolve never stops the batch; only ctx cancellation does, in
// which case unscheduled results are left zero and ctx.Err() is returned.
func (r *Resolver) ResolveBatch(ctx context.Context, rs *rules.RuleSet, inputs []Input, workers int) ([]ResolvedAttributes, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]ResolvedAttributes, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = r.Resolve(rs, in.Record, in.Context)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, ctx.Err()
}
