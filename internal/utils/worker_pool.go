package utils

import (
	"sync"
)

// WorkerPool runs upload jobs on a fixed set of workers so slow network calls
// never block the sampling loop.
type WorkerPool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given number of workers and
// queue capacity.
func NewWorkerPool(workers, queueSize int) *WorkerPool {
	pool := &WorkerPool{
		jobs: make(chan func(), queueSize),
	}

	pool.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer pool.wg.Done()
			for job := range pool.jobs {
				job()
			}
		}()
	}

	return pool
}

// Submit queues a job for execution, blocking when the queue is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.jobs <- job
}

// Shutdown stops accepting jobs and waits for queued ones to finish.
func (wp *WorkerPool) Shutdown() {
	close(wp.jobs)
	wp.wg.Wait()
}
