package solver

import "sync"

// CancelToken is cooperative cancellation shared between the job
// manager and the solver: Cancel() is safe to call concurrently and
// any number of times.
type CancelToken struct {
	mu     sync.Mutex
	ch     chan struct{}
	closed bool
}

func NewCancelToken() *CancelToken {
	return &CancelToken{ch: make(chan struct{})}
}

func (c *CancelToken) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}

func (c *CancelToken) Done() <-chan struct{} {
	return c.ch
}

func (c *CancelToken) IsCancelled() bool {
	select {
	case <-c.ch:
		return true
	default:
		return false
	}
}
