package parallel

import (
	"fmt"
	"math"
	"sync"
)

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func() error
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu

	errMu    sync.Mutex
	firstErr error
}

// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
var ErrTooManyWorkers = fmt.Errorf("worker count exceeds maximum")

// ErrPoolClosed is returned by Submit after Close or Wait.
var ErrPoolClosed = fmt.Errorf("worker pool is closed")

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// NewWorkerPool creates a new worker pool with specified number of workers.
// Returns an error if the worker count exceeds MaxWorkers.
func NewWorkerPool(workers int) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}

	// Prevent overflow in buffer size calculation
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func() error, workers*2), // Buffer for 2x workers
	}

	pool.start()
	return pool, nil
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// start initializes the worker goroutines
func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.record(wp.run(task))
	}
}

// run executes one task, turning a panic into an error so that one bad
// task fails the batch instead of crashing the process.
func (wp *WorkerPool) run(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panic recovered: %v", r)
		}
	}()
	return task()
}

func (wp *WorkerPool) record(err error) {
	if err == nil {
		return
	}
	wp.errMu.Lock()
	if wp.firstErr == nil {
		wp.firstErr = err
	}
	wp.errMu.Unlock()
}

// Submit adds a task to the worker pool.
// Returns ErrPoolClosed if the pool no longer accepts work.
func (wp *WorkerPool) Submit(task func() error) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrPoolClosed
	}

	// Safe to send because we hold the lock and pool is not closed
	wp.taskQueue <- task
	return nil
}

// Close shuts down the worker pool and waits for queued tasks.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait closes the pool, waits for all submitted tasks to complete and
// returns the first task error, if any.
func (wp *WorkerPool) Wait() error {
	wp.Close()
	wp.errMu.Lock()
	defer wp.errMu.Unlock()
	return wp.firstErr
}
