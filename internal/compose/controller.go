package compose

import (
	"sync"
)

// Controller offloads composition passes to a single worker goroutine.
// Submit is fire-and-forget: each call supersedes any pending work, and
// the worker only ever picks up the most recent snapshot. Results are
// keyed by a monotonic job counter; a result whose id no longer matches
// the latest submission is discarded without touching anything.
type Controller struct {
	onResult func(Result)
	run      func(Input) Result

	mu      sync.Mutex
	latest  uint64
	applied uint64
	pending *Input
	wake    chan struct{}
	done    chan struct{}
	closed  bool
}

// NewController starts the worker. onResult is called from the worker
// goroutine with each accepted (non-stale) result.
func NewController(onResult func(Result)) *Controller {
	return newController(Run, onResult)
}

func newController(run func(Input) Result, onResult func(Result)) *Controller {
	c := &Controller{
		onResult: onResult,
		run:      run,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go c.work()
	return c
}

// Submit queues a composition pass and returns its job id. Any pending
// not-yet-started pass is replaced; an in-flight pass keeps running but
// its result will be dropped as stale.
func (c *Controller) Submit(in Input) uint64 {
	c.mu.Lock()
	c.latest++
	id := c.latest
	c.pending = &in
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return id
}

// Busy reports whether the latest submission's result is still
// outstanding. Superseded jobs never leave it stuck: the flag clears
// when the superseding job's result lands, not the stale one's.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest != c.applied
}

// Close stops the worker. In-flight work finishes but its result is not
// delivered.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	close(c.done)
}

func (c *Controller) work() {
	for {
		select {
		case <-c.done:
			return
		case <-c.wake:
		}

		for {
			c.mu.Lock()
			in := c.pending
			id := c.latest
			c.pending = nil
			c.mu.Unlock()
			if in == nil {
				break
			}

			res := c.run(*in)
			res.Job = id

			c.mu.Lock()
			stale := id != c.latest
			closed := c.closed
			if !stale {
				c.applied = id
			}
			c.mu.Unlock()

			if !stale && !closed && c.onResult != nil {
				c.onResult(res)
			}
		}
	}
}
