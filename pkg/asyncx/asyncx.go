package asyncx

import (
	"context"
	"sync"
)

// Result holds the outcome of a single settled async operation.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the result carries no error.
func (r Result[T]) OK() bool { return r.Err == nil }

// ─── Worker Pool ──────────────────────────────────────────────────────────────

// Pool processes items using at most workers goroutines and returns results
// in the original order. Returns the first error encountered.
//
// Use this instead of unbounded fan-out when the number of items is large
// and the downstream is rate-limited (e.g. a mail provider API).
func Pool[T any, R any](
	ctx context.Context,
	workers int,
	items []T,
	fn func(context.Context, T) (R, error),
) ([]R, error) {
	settled := PoolSettled(ctx, workers, items, fn)

	results := make([]R, len(settled))
	for i, r := range settled {
		if r.Err != nil {
			return nil, r.Err
		}
		results[i] = r.Value
	}
	return results, nil
}

// PoolSettled is like Pool but never short-circuits: it returns one Result
// per item. Items not started before ctx is done get ctx.Err().
func PoolSettled[T any, R any](
	ctx context.Context,
	workers int,
	items []T,
	fn func(context.Context, T) (R, error),
) []Result[R] {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	type indexed struct {
		i    int
		item T
	}

	work := make(chan indexed, len(items))
	for i, item := range items {
		work <- indexed{i: i, item: item}
	}
	close(work)

	results := make([]Result[R], len(items))

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for w := range work {
				if err := ctx.Err(); err != nil {
					results[w.i] = Result[R]{Err: err}
					continue
				}
				v, err := fn(ctx, w.item)
				results[w.i] = Result[R]{Value: v, Err: err}
			}
		}()
	}
	wg.Wait()

	return results
}
