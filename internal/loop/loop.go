// Package loop provides a single-threaded callback loop with cancellable timers.
// Every callback posted or scheduled on a Loop runs on the goroutine that called
// Run, one at a time, so code driven by the loop needs no further coordination.
package loop

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Token identifies a scheduled callback so it can be cancelled.
// The zero Token is never issued.
type Token uint64

// Loop serializes callbacks onto a single goroutine.
type Loop struct {
	logger *slog.Logger

	mu      sync.Mutex
	nextID  Token
	pending map[Token]*time.Timer
	stopped bool

	tasks  chan func()
	stopCh chan struct{}
}

// New creates a new Loop. Callbacks are buffered until Run is called.
func New(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		logger:  logger,
		pending: make(map[Token]*time.Timer),
		tasks:   make(chan func(), 64),
		stopCh:  make(chan struct{}),
	}
}

// Run executes callbacks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stopCh:
			return
		case fn := <-l.tasks:
			l.run(fn)
		}
	}
}

// run executes one callback, recovering from panics so one bad callback
// does not take the loop down.
func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop callback panicked", "panic", r)
		}
	}()
	fn()
}

// Stop stops the loop and cancels every pending timer. It is safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}
	l.stopped = true
	close(l.stopCh)

	for id, t := range l.pending {
		t.Stop()
		delete(l.pending, id)
	}
}

// Post queues fn to run on the loop goroutine.
// Posting to a stopped loop drops the callback.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		l.logger.Debug("dropped callback posted to stopped loop")
		return
	}

	select {
	case l.tasks <- fn:
	case <-l.stopCh:
		l.logger.Debug("dropped callback posted to stopped loop")
	}
}

// ScheduleAfter runs fn on the loop goroutine once d has elapsed.
// The returned Token can be passed to Cancel.
func (l *Loop) ScheduleAfter(d time.Duration, fn func()) Token {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	if l.stopped {
		return id
	}

	l.pending[id] = time.AfterFunc(d, func() {
		l.Post(func() {
			// Cancel may have raced with the timer firing; the pending entry
			// is the source of truth.
			if !l.claim(id) {
				return
			}
			fn()
		})
	})
	return id
}

// claim removes id from the pending set and reports whether it was still pending.
func (l *Loop) claim(id Token) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.pending[id]; !ok {
		return false
	}
	delete(l.pending, id)
	return true
}

// Cancel prevents a scheduled callback from running.
// Cancelling an unknown, fired, or already cancelled token is a no-op.
func (l *Loop) Cancel(id Token) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.pending[id]; ok {
		t.Stop()
		delete(l.pending, id)
	}
}

// Pending returns the number of scheduled callbacks that have not run or been cancelled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
