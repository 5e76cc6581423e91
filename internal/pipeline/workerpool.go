package pipeline

import (
	"context"
	"runtime"
	"sync"
)

// Indexed carries a value together with its position in the input.
type Indexed[T any] struct {
	Index int
	Value T
}

// WorkerPool runs a function over jobs on a fixed number of goroutines.
// Results carry the index of their job so callers can restore input order.
type WorkerPool[Job any, Result any] struct {
	numWorkers int
	jobs       chan Indexed[Job]
	results    chan Indexed[Result]
	wg         sync.WaitGroup
}

// NewWorkerPool creates a pool with numWorkers goroutines. If numWorkers is
// 0 or negative, it defaults to runtime.NumCPU(). A pool never has more
// workers than jobs.
func NewWorkerPool[Job any, Result any](numWorkers, numJobs int) *WorkerPool[Job, Result] {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numJobs > 0 {
		numWorkers = min(numWorkers, numJobs)
	}

	return &WorkerPool[Job, Result]{
		numWorkers: numWorkers,
		jobs:       make(chan Indexed[Job]),
		results:    make(chan Indexed[Result], numWorkers),
	}
}

// Workers returns the number of goroutines the pool starts.
func (p *WorkerPool[Job, Result]) Workers() int {
	return p.numWorkers
}

// Start begins the workers. Each job is passed to workerFn.
func (p *WorkerPool[Job, Result]) Start(workerFn func(Job) Result) {
	for range p.numWorkers {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.results <- Indexed[Result]{Index: job.Index, Value: workerFn(job.Value)}
			}
		}()
	}
}

// Submit queues a job. It returns false without queueing when ctx is done.
func (p *WorkerPool[Job, Result]) Submit(ctx context.Context, index int, job Job) bool {
	select {
	case p.jobs <- Indexed[Job]{Index: index, Value: job}:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close stops accepting jobs. The results channel closes once every worker
// has finished.
func (p *WorkerPool[Job, Result]) Close() {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

// Results returns the channel of finished jobs, in completion order.
func (p *WorkerPool[Job, Result]) Results() <-chan Indexed[Result] {
	return p.results
}

// Map applies fn to every item on a pool of workers and returns the results
// in input order. It stops submitting work once ctx is done and returns the
// context's error.
func Map[T any, R any](ctx context.Context, workers int, items []T, fn func(T) R) ([]R, error) {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out, ctx.Err()
	}

	pool := NewWorkerPool[T, R](workers, len(items))
	pool.Start(fn)
	go func() {
		defer pool.Close()
		for i, item := range items {
			if !pool.Submit(ctx, i, item) {
				return
			}
		}
	}()

	for r := range pool.Results() {
		out[r.Index] = r.Value
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
