// Package parallel runs independent units of work on a fixed set of
// goroutines. pathfx uses it to flatten many unrelated paths at once: each
// path is its own unit and no ordering holds between them.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines with one queue per worker.
//
// Work is dealt round-robin onto the queues. A worker whose own queue is
// empty steals from the others before blocking, which keeps all workers
// busy when some paths take much longer to flatten than others.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool

	// submit is held shared by ExecuteAll and exclusively by Close, so
	// Close waits for in-flight batches before stopping the workers.
	submit sync.RWMutex
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// 4x workers hides queueing latency without holding much memory.
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(own)
			return
		case work := <-own:
			work()
			continue
		default:
		}

		if stolen := p.steal(id); stolen != nil {
			stolen()
			continue
		}

		select {
		case <-p.done:
			p.drainQueue(own)
			return
		case work := <-own:
			work()
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across workers and waits for all of it to
// finish. Items still queued when ctx is cancelled are skipped, and the
// context error is returned. On a closed pool ExecuteAll runs nothing and
// returns ErrClosed, as it does on a nil pool.
func (p *WorkerPool) ExecuteAll(ctx context.Context, work []func()) error {
	if p == nil {
		return ErrClosed
	}
	p.submit.RLock()
	defer p.submit.RUnlock()
	if !p.running.Load() {
		return ErrClosed
	}
	if len(work) == 0 {
		return nil
	}

	var pending sync.WaitGroup
	pending.Add(len(work))
	for i, fn := range work {
		wrapped := func() {
			defer pending.Done()
			if ctx.Err() == nil {
				fn()
			}
		}
		p.workQueues[i%p.workers] <- wrapped
	}
	pending.Wait()
	return ctx.Err()
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for running ExecuteAll calls to
// finish, and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.submit.Lock()
	stopped := p.running.CompareAndSwap(true, false)
	p.submit.Unlock()
	if !stopped {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
