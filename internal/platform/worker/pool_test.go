package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunOrderedReturnsResultsInJobOrder(t *testing.T) {
	pool := NewPool(context.Background(), 4, 16)
	defer pool.Close()

	jobs := make([]Job, 10)
	for i := 0; i < 10; i++ {
		index := i
		jobs[i] = Job{
			Index: index,
			Execute: func(context.Context) (any, error) {
				// Stagger completion so later jobs can finish first.
				time.Sleep(time.Duration(10-index) * time.Millisecond)
				return index * 10, nil
			},
		}
	}

	results := pool.RunOrdered(jobs)
	if len(results) != 10 {
		t.Fatalf("Expected 10 results, got %d", len(results))
	}

	for i, result := range results {
		if result.Index != i {
			t.Errorf("Result %d carries index %d", i, result.Index)
		}
		if result.Value != i*10 {
			t.Errorf("Result %d carries value %v, expected %d", i, result.Value, i*10)
		}
	}
}

func TestRunOrderedPropagatesJobErrors(t *testing.T) {
	pool := NewPool(context.Background(), 2, 4)
	defer pool.Close()

	jobErr := errors.New("pricing failed")
	jobs := []Job{
		{Index: 0, Execute: func(context.Context) (any, error) { return 1, nil }},
		{Index: 1, Execute: func(context.Context) (any, error) { return nil, jobErr }},
	}

	results := pool.RunOrdered(jobs)
	if results[0].Err != nil {
		t.Errorf("Unexpected error for job 0: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, jobErr) {
		t.Errorf("Expected job 1's error back, got %v", results[1].Err)
	}
}

func TestRunOrderedExecutesConcurrently(t *testing.T) {
	pool := NewPool(context.Background(), 4, 8)
	defer pool.Close()

	var peak, active int32
	jobs := make([]Job, 8)
	for i := 0; i < 8; i++ {
		jobs[i] = Job{
			Index: i,
			Execute: func(context.Context) (any, error) {
				n := atomic.AddInt32(&active, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil, nil
			},
		}
	}

	pool.RunOrdered(jobs)

	if observed := atomic.LoadInt32(&peak); observed < 2 {
		t.Errorf("Expected at least 2 jobs in flight, observed peak %d", observed)
	}
}

func TestSubmitAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 1, 0)
	defer pool.Close()

	cancel()
	// Give the worker time to observe the cancellation and exit; with no
	// queue buffer and no receiver left, Submit can only fail.
	time.Sleep(50 * time.Millisecond)

	err := pool.Submit(Job{Index: 0, Execute: func(context.Context) (any, error) { return nil, nil }})
	if err == nil {
		t.Error("Expected Submit to fail after cancellation")
	}
}

func TestNewPoolNormalizesSizes(t *testing.T) {
	pool := NewPool(context.Background(), 0, -1)
	defer pool.Close()

	if pool.Workers() != 1 {
		t.Errorf("Expected pool size normalized to 1, got %d", pool.Workers())
	}
}
