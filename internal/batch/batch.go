package batch

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ProgressFunc is invoked after each item completes, with the number of
// completed items so far and the total. Calls are serialized and the
// completed count increases by exactly one per call.
type ProgressFunc func(done, total int)

// MapLimit runs worker over items [0, n) with at most limit concurrent
// invocations, limit floored to 1. Result slot i always holds the result
// for item i regardless of completion order.
//
// Work is distributed pull-style: each worker claims the next unclaimed
// index from a shared counter, so faster items naturally free a slot for
// the next one instead of a static partition stalling behind a slow item.
//
// A worker error cancels the remaining items and is returned from MapLimit;
// workers that must not abort the batch have to handle their own failures.
func MapLimit[T any](ctx context.Context, n, limit int, worker func(ctx context.Context, i int) (T, error), onProgress ProgressFunc) ([]T, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > n {
		limit = n
	}

	results := make([]T, n)
	if n == 0 {
		return results, nil
	}

	var (
		next int64 = -1
		done int
		mu   sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < limit; w++ {
		g.Go(func() error {
			for {
				i := int(atomic.AddInt64(&next, 1))
				if i >= n {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}

				res, err := worker(ctx, i)
				if err != nil {
					return err
				}
				results[i] = res

				if onProgress != nil {
					mu.Lock()
					done++
					onProgress(done, n)
					mu.Unlock()
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}
