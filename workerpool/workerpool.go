// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs elementwise evaluations over disjoint index ranges
// on a fixed set of persistent goroutines.
//
// Both the approximation kernel and the arbitrary-precision reference are
// embarrassingly parallel: every abscissa is independent, so the only job of
// the pool is to hand out index ranges and wait for them. The kernel uses
// contiguous spans (ParallelFor); the reference, whose cost per point grows
// with |x|, pulls single indices (ParallelForAtomic) so slow points do not
// pile up on one worker.
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//	pool.ParallelFor(len(xs), func(start, end int) {
//	    bessel.BaseJ1c(xs[start:end], out[start:end])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent set of worker goroutines. A Pool is safe for use by
// multiple goroutines; each Parallel call blocks until its own work is done.
type Pool struct {
	numWorkers int
	jobs       chan job

	// mu is held for reading by every call that sends on jobs, and for
	// writing by Close, so jobs is never closed under a sender.
	mu        sync.RWMutex
	closeOnce sync.Once
	closed    atomic.Bool
}

type job struct {
	run  func()
	done *sync.WaitGroup
}

// New starts a pool with numWorkers goroutines. numWorkers <= 0 means
// GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan job, numWorkers*2),
	}
	for range numWorkers {
		go p.loop()
	}
	return p
}

func (p *Pool) loop() {
	for j := range p.jobs {
		j.run()
		j.done.Done()
	}
}

// NumWorkers returns the number of goroutines owned by the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers. It waits for Parallel calls already in flight to
// finish, so it must not be called from inside fn. Close is idempotent, and a
// closed pool keeps working by running every call on the caller's goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.closed.Store(true)
		close(p.jobs)
	})
}

// acquire read-locks the pool and reports how many goroutines to use for n
// units of work, or 1 when the call should run inline. The caller must call
// release once it has waited for its jobs.
func (p *Pool) acquire(n int) int {
	if p == nil {
		return 1
	}
	p.mu.RLock()
	return p.workers(n)
}

func (p *Pool) release() {
	if p != nil {
		p.mu.RUnlock()
	}
}

// workers reports how many goroutines to use for n units of work, or 1 when
// the call should run inline.
func (p *Pool) workers(n int) int {
	if p == nil || p.closed.Load() {
		return 1
	}
	return min(p.numWorkers, n)
}

// dispatch queues run on count workers and waits for all of them.
func (p *Pool) dispatch(count int, run func()) {
	var wg sync.WaitGroup
	wg.Add(count)
	for range count {
		p.jobs <- job{run: run, done: &wg}
	}
	wg.Wait()
}

// ParallelFor splits [0, n) into at most NumWorkers contiguous spans and calls
// fn(start, end) once per span. Spans never overlap, so fn may write
// output[start:end] without synchronisation.
//
// A nil or closed pool runs fn(0, n) inline.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := p.acquire(n)
	defer p.release()
	if workers == 1 {
		fn(0, n)
		return
	}

	span := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += span {
		end := min(start+span, n)
		wg.Add(1)
		p.jobs <- job{run: func() { fn(start, end) }, done: &wg}
	}
	wg.Wait()
}

// ParallelForAtomic calls fn(i) for every i in [0, n). Workers claim indices
// one at a time from a shared counter, which balances uneven per-index cost.
//
// A nil or closed pool runs the loop inline, in index order.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := p.acquire(n)
	defer p.release()
	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	p.dispatch(workers, func() {
		for {
			i := int(next.Add(1)) - 1
			if i >= n {
				return
			}
			fn(i)
		}
	})
}
