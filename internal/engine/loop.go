// Package engine owns all placement state mutation.
//
// Every write to the placement ledger, geometry cache, and trigger state
// machine is funneled through a single consumer goroutine. Input taps,
// hotkey callbacks, and window-server notifications post closures instead
// of mutating shared state, so the engine needs no cross-source ordering
// guarantees beyond per-source FIFO.
package engine

import (
	"sync"
)

// Loop is the single-consumer task queue acting as the owner thread.
type Loop struct {
	tasks    chan func()
	quit     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a stopped-but-ready loop. Call Run (usually in its own
// goroutine) to start consuming.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		quit:  make(chan struct{}),
	}
}

// Post enqueues fn for execution on the owner thread. Posting to a stopped
// loop drops the task.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.quit:
	}
}

// Run consumes tasks until Stop is called. Blocking.
func (l *Loop) Run() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.quit:
			return
		}
	}
}

// Stop terminates the loop. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.quit)
	})
}
