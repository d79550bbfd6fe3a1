package pwdict

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ClassifyAll classifies candidates concurrently with at most workers
// goroutines (GOMAXPROCS if workers < 1). Verdicts are returned in input order.
// The index is only read, so no locking is needed. If ctx is cancelled, the
// batch stops and ctx.Err() is returned.
func (c *Classifier) ClassifyAll(ctx context.Context, candidates []string, workers int) ([]Verdict, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	verdicts := make([]Verdict, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, candidate := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			verdicts[i] = c.Classify(candidate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return verdicts, nil
}
