package nav

import (
	"context"
	"fmt"
	"sync"
)

// Completion is a one-shot result channel attached to an imperatively pushed
// match. It is resolved once, by whoever removes the match, and may be
// awaited from any goroutine.
type Completion struct {
	mu     sync.Mutex
	done   chan struct{}
	result any
	closed bool
}

// NewCompletion returns a pending completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Complete resolves the completion with result. Only the first call is
// honored; later calls return ErrAlreadyCompleted.
func (c *Completion) Complete(result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("nav: %w", ErrAlreadyCompleted)
	}
	c.result = result
	c.closed = true
	close(c.done)
	return nil
}

// Done returns a channel that is closed once the completion is resolved.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Result returns the resolved value and whether the completion is resolved.
func (c *Completion) Result() (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.closed
}

// Wait blocks until the completion is resolved or ctx is done.
func (c *Completion) Wait(ctx context.Context) (any, error) {
	select {
	case <-c.done:
		v, _ := c.Result()
		return v, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
