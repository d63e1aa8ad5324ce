// Package parallel runs batches of independent jobs on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines pulling jobs from one shared
// queue. Whichever worker is idle takes the next job, so slow jobs do not
// hold up the rest of a batch.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queue   chan func()
	wg      sync.WaitGroup
	running atomic.Bool
	once    sync.Once
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		queue:   make(chan func(), workers*2),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.queue {
		job()
	}
}

// ExecuteAll runs every job and returns once all of them have finished.
// After Close the jobs run on the calling goroutine.
func (p *Pool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, job := range work {
			job()
		}
		return
	}

	var done sync.WaitGroup
	done.Add(len(work))
	for _, job := range work {
		p.queue <- func() {
			defer done.Done()
			job()
		}
	}
	done.Wait()
}

// Close stops the workers once queued jobs are drained.
// ExecuteAll must not be running concurrently with Close.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.running.Store(false)
		close(p.queue)
		p.wg.Wait()
	})
}
