// Package worker provides a fixed-size worker pool whose results are
// re-assembled in submission order, for fanning out independent
// evaluations that must come back as an ordered slice.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work identified by its position in the batch.
type Job struct {
	// Index is the job's position in the submitted batch; the result for
	// this job lands at the same position in the collected slice.
	Index int
	// Execute runs the work. It receives the pool's context.
	Execute func(ctx context.Context) (any, error)
}

// Result is the outcome of one job.
type Result struct {
	Index int
	Value any
	Err   error
}

// Pool runs jobs on a fixed number of goroutines.
type Pool struct {
	workers  int
	jobQueue chan Job
	results  chan Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPool starts a pool of the given size. queueSize bounds both the job
// and result buffers; RunOrdered requires queueSize >= the batch length so
// no result is ever dropped.
func NewPool(ctx context.Context, workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	poolCtx, cancel := context.WithCancel(ctx)
	p := &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		results:  make(chan Result, queueSize),
		ctx:      poolCtx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			value, err := job.Execute(p.ctx)
			select {
			case p.results <- Result{Index: job.Index, Value: value, Err: err}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job, blocking until there is room or the pool's context
// is cancelled.
func (p *Pool) Submit(job Job) error {
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case p.jobQueue <- job:
		return nil
	}
}

// RunOrdered submits a batch and blocks until every job has completed,
// returning results ordered by job index. Jobs execute concurrently; only
// the collection is ordered. On cancellation the slice is returned with
// the completed entries filled in.
func (p *Pool) RunOrdered(jobs []Job) []Result {
	ordered := make([]Result, len(jobs))

	submitted := 0
	for _, job := range jobs {
		if err := p.Submit(job); err != nil {
			break
		}
		submitted++
	}

	for i := 0; i < submitted; i++ {
		select {
		case <-p.ctx.Done():
			return ordered
		case result := <-p.results:
			if result.Index >= 0 && result.Index < len(ordered) {
				ordered[result.Index] = result
			}
		}
	}

	return ordered
}

// Close stops the pool and waits for workers to exit.
func (p *Pool) Close() {
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
}

// Workers returns the pool size.
func (p *Pool) Workers() int {
	return p.workers
}
