package asyncx_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/Abraxas-365/mailgun/pkg/asyncx"
)

func TestPool_PreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	got, err := asyncx.Pool(context.Background(), 3, items, func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, n := range items {
		if got[i] != n*n {
			t.Errorf("index %d: expected %d, got %d", i, n*n, got[i])
		}
	}
}

func TestPool_ReturnsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := asyncx.Pool(context.Background(), 2, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPoolSettled_BoundsConcurrency(t *testing.T) {
	var running, peak int32
	release := make(chan struct{})
	items := make([]int, 10)

	done := make(chan []asyncx.Result[int])
	go func() {
		done <- asyncx.PoolSettled(context.Background(), 2, items, func(_ context.Context, _ int) (int, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&running, -1)
			return 1, nil
		})
	}()
	close(release)
	results := <-done

	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Fatalf("expected at most 2 concurrent workers, saw %d", p)
	}
	for i, r := range results {
		if !r.OK() || r.Value != 1 {
			t.Errorf("item %d: unexpected result %+v", i, r)
		}
	}
}

func TestPoolSettled_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	results := asyncx.PoolSettled(ctx, 2, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		atomic.AddInt32(&calls, 1)
		return n, nil
	})
	if calls != 0 {
		t.Errorf("expected no calls after cancellation, got %d", calls)
	}
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", r.Err)
		}
	}
}

func TestPoolSettled_Empty(t *testing.T) {
	results := asyncx.PoolSettled(context.Background(), 4, []int{}, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
