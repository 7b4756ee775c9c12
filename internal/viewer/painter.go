package viewer

import (
	"context"
	"sync"
)

// painter draws frames on its own goroutine. A newer job cancels the one in
// flight unless frameDropThreshold draws in a row were already cancelled.
type painter struct {
	draw func(context.Context, paintJob)
	jobs chan paintJob
	wg   sync.WaitGroup

	mu      sync.Mutex
	cancel  context.CancelFunc
	dropped int
	stopped bool
}

func newPainter(draw func(context.Context, paintJob)) *painter {
	p := &painter{draw: draw, jobs: make(chan paintJob, 1)}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *painter) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		ctx, cancel := context.WithCancel(context.Background())
		p.mu.Lock()
		p.cancel = cancel
		p.mu.Unlock()
		p.draw(ctx, job)
		p.mu.Lock()
		p.cancel = nil
		if ctx.Err() == nil {
			p.dropped = 0
		}
		p.mu.Unlock()
		cancel()
	}
}

// Submit queues job, replacing any job that has not started yet.
func (p *painter) Submit(job paintJob) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	if p.cancel != nil && p.dropped < frameDropThreshold {
		p.cancel()
		p.dropped++
	}
	select {
	case p.jobs <- job:
	default:
		select {
		case <-p.jobs:
		default:
		}
		p.jobs <- job
	}
}

// Stop cancels the current draw and returns once the goroutine has exited.
func (p *painter) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		if p.cancel != nil {
			p.cancel()
		}
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// sender forwards events to the window until it is stopped. Stop returns
// only after in-flight sends have finished.
type sender struct {
	send    func(interface{})
	mu      sync.RWMutex
	stopped bool
}

func (s *sender) Send(e interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.stopped {
		s.send(e)
	}
}

func (s *sender) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}
