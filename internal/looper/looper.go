// SPDX-License-Identifier: Unlicense OR MIT

/*
Package looper implements the UI goroutine of an analog clock program.

A Looper is a serial queue of callbacks. Any goroutine may Post to it, but
only the goroutine that drains C (or calls Run) executes the callbacks, so
state touched exclusively from callbacks needs no locking.

Delayed callbacks are registered with Schedule, which returns a cancel
function. Once cancel has returned on the draining goroutine, the callback
is guaranteed not to run, even if its timer already fired and the callback
is sitting in the queue.
*/
package looper

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// queueSize bounds the number of callbacks waiting to be dispatched
// before Post blocks.
const queueSize = 64

// Looper is a single-consumer callback queue.
type Looper struct {
	clock clockwork.Clock
	queue chan func()

	mu      sync.Mutex
	pending map[*entry]struct{}
}

type entry struct {
	fn        func()
	timer     clockwork.Timer
	cancelled atomic.Bool
}

// New returns a Looper whose delayed callbacks are timed by clock.
// A nil clock means the real clock.
func New(clock clockwork.Clock) *Looper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Looper{
		clock:   clock,
		queue:   make(chan func(), queueSize),
		pending: make(map[*entry]struct{}),
	}
}

// C returns the channel of callbacks ready to run. The owning goroutine
// receives from it and calls each function it receives.
func (l *Looper) C() <-chan func() {
	return l.queue
}

// Post queues fn for execution on the owning goroutine. It is safe to call
// from any goroutine.
func (l *Looper) Post(fn func()) {
	l.queue <- fn
}

// Schedule arranges for fn to run on the owning goroutine after d. The
// returned function cancels the callback; calling it more than once is
// harmless.
func (l *Looper) Schedule(d time.Duration, fn func()) (cancel func()) {
	e := &entry{fn: fn}
	l.mu.Lock()
	l.pending[e] = struct{}{}
	l.mu.Unlock()
	e.timer = l.clock.AfterFunc(d, func() {
		l.queue <- func() { l.dispatch(e) }
	})
	return func() { l.cancel(e) }
}

// Pending reports the number of scheduled callbacks that have neither run
// nor been cancelled.
func (l *Looper) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Run drains the queue until ctx is done.
func (l *Looper) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

func (l *Looper) dispatch(e *entry) {
	if e.cancelled.Load() {
		return
	}
	l.forget(e)
	e.fn()
}

func (l *Looper) cancel(e *entry) {
	if e.cancelled.Swap(true) {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	l.forget(e)
}

func (l *Looper) forget(e *entry) {
	l.mu.Lock()
	delete(l.pending, e)
	l.mu.Unlock()
}
