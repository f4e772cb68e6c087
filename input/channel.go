// Package input provides the command sources that feed a tetris.Controller.
package input

import (
	"sync"

	"github.com/plus3/blockfall/tetris"
)

// Channel is a buffered command queue fed by a UI event loop.
type Channel struct {
	ch     chan tetris.Command
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

// NewChannel creates a queue holding up to size pending commands.
func NewChannel(size int) *Channel {
	return &Channel{ch: make(chan tetris.Command, size)}
}

func (c *Channel) Commands() <-chan tetris.Command {
	return c.ch
}

// Send queues cmd without blocking. It reports false when the queue is full
// or closed.
func (c *Channel) Send(cmd tetris.Command) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.ch <- cmd:
		return true
	default:
		return false
	}
}

// Close ends the stream; the controller reads it as a quit.
func (c *Channel) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.ch)
		c.mu.Unlock()
	})
}
