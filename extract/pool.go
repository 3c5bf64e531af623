package extract

import (
	"runtime"
	"sync"

	"github.com/dendrascience/archive-preview/internal/metrics"
)

// Pool runs submitted jobs on a fixed number of workers. The queue is
// unbounded and FIFO: Submit never blocks.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool

	pending sync.WaitGroup
	workers sync.WaitGroup
}

// NewPool starts a pool with the given number of workers, or one per CPU when
// workers is not positive.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	p.workers.Add(workers)
	for range workers {
		go p.work()
	}
	return p
}

// Submit queues job. It fails only after Close.
func (p *Pool) Submit(job func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.pending.Add(1)
	p.queue = append(p.queue, job)
	metrics.TaskQueued()
	p.cond.Signal()
	return nil
}

// Wait blocks until every job submitted so far has finished.
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Close stops accepting jobs, lets the workers drain the queue and waits for
// them to exit.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.workers.Wait()
}

func (p *Pool) work() {
	defer p.workers.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		metrics.TaskStarted()
		job()
		metrics.TaskFinished()
		p.pending.Done()
	}
}
