package lbp

import (
	"runtime"
	"sync"
)

// WorkerPool runs row bands of an image on a fixed set of goroutines
type WorkerPool struct {
	workers  int
	jobQueue chan job
	once     sync.Once
	mu       sync.RWMutex
	closed   bool
}

type job struct {
	fn      func()
	barrier *sync.WaitGroup
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan job, workers*2),
	}
}

// Start initializes and starts all workers in the pool
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

// worker processes jobs from the job queue
func (wp *WorkerPool) worker() {
	for j := range wp.jobQueue {
		j.fn()
		j.barrier.Done()
	}
}

// Workers returns the number of workers in the pool
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// ParallelFor splits [0, n) into contiguous chunks of at least minChunk items
// and runs fn on each chunk, blocking until every chunk is done. It runs
// sequentially when the pool is closed or when only one chunk is needed.
func (wp *WorkerPool) ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	minChunk = max(minChunk, 1)
	chunks := min(wp.workers, (n+minChunk-1)/minChunk)

	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed || chunks <= 1 {
		fn(0, n)
		return
	}
	wp.Start()

	size := (n + chunks - 1) / chunks
	var wg sync.WaitGroup
	for start := 0; start < n; start += size {
		start := start
		end := min(start+size, n)
		wg.Add(1)
		wp.jobQueue <- job{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// Close shuts down the worker pool. Calling Close more than once is safe.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.closed {
		return
	}
	wp.closed = true
	close(wp.jobQueue)
}
