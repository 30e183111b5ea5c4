package engine

import (
	"sync"
	"time"
)

// Timer is a single-shot, cancellable scheduled task. Scheduling while a
// prior task is pending cancels it first, so at most one callback is ever
// in flight. A generation counter guards against a stopped time.AfterFunc
// that already fired racing a reschedule.
type Timer struct {
	mu      sync.Mutex
	gen     uint64
	pending *time.Timer
}

// Schedule cancels any pending task and arranges fn to run after delay.
func (t *Timer) Schedule(delay time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		t.pending.Stop()
	}
	t.gen++
	gen := t.gen

	t.pending = time.AfterFunc(delay, func() {
		t.mu.Lock()
		live := t.gen == gen
		if live {
			t.pending = nil
		}
		t.mu.Unlock()

		if live {
			fn()
		}
	})
}

// Cancel stops any pending task. A no-op when nothing is scheduled.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

// Pending reports whether a task is scheduled and has not fired.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}
