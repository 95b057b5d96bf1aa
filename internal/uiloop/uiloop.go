// Package uiloop serializes every window and dock-state mutation onto one
// goroutine. Other goroutines (the idle poller, the keyboard hook consumer,
// tray callbacks) hand work over with Post and never touch UI state directly.
package uiloop

import (
	"context"
	"log"
	"runtime/debug"
	"sync"
	"time"
)

const defaultQueueSize = 256

// Loop is a queue of closures drained on the UI thread. The queue grows as
// needed, so Post never blocks, including when the UI thread posts to
// itself.
type Loop struct {
	ready chan struct{}
	done  chan struct{}
	once  sync.Once

	mu      sync.Mutex
	pending []func()
	wake    func()
}

// New creates a loop with room for size pending closures before the queue
// has to grow.
func New(size int) *Loop {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Loop{
		ready:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		pending: make([]func(), 0, size),
	}
}

// SetWaker registers a function called after each Post. The window thread
// uses it to nudge its message pump so Drain runs promptly.
func (l *Loop) SetWaker(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.wake = fn
}

// Post queues fn for the UI thread. It reports false once the loop is stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	l.mu.Lock()
	l.pending = append(l.pending, fn)
	wake := l.wake
	l.mu.Unlock()

	select {
	case l.ready <- struct{}{}:
	default:
	}
	if wake != nil {
		wake()
	}
	return true
}

// After posts fn once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Drain runs every closure queued so far, including ones posted while
// draining. It must be called on the UI thread.
func (l *Loop) Drain() {
	for {
		l.mu.Lock()
		batch := l.pending
		l.pending = nil
		l.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			l.run(fn)
		}
	}
}

// Run drains the queue until ctx is done or Stop is called. It is used when
// no native message pump owns the UI thread.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-l.ready:
			l.Drain()
		case <-ctx.Done():
			return
		case <-l.done:
			return
		}
	}
}

// Stop rejects further posts. Pending closures are dropped.
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.done)
		l.mu.Lock()
		l.pending = nil
		l.mu.Unlock()
	})
}

// Done is closed once the loop is stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("UILoop: recovered from panic: %v\n%s", r, debug.Stack())
		}
	}()
	fn()
}
