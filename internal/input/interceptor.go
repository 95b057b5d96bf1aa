package input

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultSuppressWindow is how long after a synthesized key physical
	// typing is ignored.
	DefaultSuppressWindow = 100 * time.Millisecond

	eventBuffer = 256
)

// Interceptor turns global key presses into dock requests.
type Interceptor struct {
	target     Target
	poster     Poster
	hideOnType func() bool

	// SuppressWindow is the quiet period started by Suppress.
	SuppressWindow time.Duration

	suppressed atomic.Bool
	generation atomic.Uint64

	mu        sync.Mutex
	listeners []KeyListener
	running   bool
	events    chan KeyEvent
	done      chan struct{}

	platform hookState
}

// NewInterceptor creates an interceptor. hideOnType is consulted on every
// key press so the preference can change at runtime.
func NewInterceptor(target Target, poster Poster, hideOnType func() bool) *Interceptor {
	return &Interceptor{
		target:         target,
		poster:         poster,
		hideOnType:     hideOnType,
		SuppressWindow: DefaultSuppressWindow,
	}
}

// AddListener registers fn to see physical key events.
func (i *Interceptor) AddListener(fn KeyListener) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.listeners = append(i.listeners, fn)
}

// Suppress ignores key presses for SuppressWindow. A later call extends the
// window.
func (i *Interceptor) Suppress() {
	gen := i.generation.Add(1)
	i.suppressed.Store(true)
	time.AfterFunc(i.SuppressWindow, func() {
		if i.generation.Load() == gen {
			i.suppressed.Store(false)
		}
	})
}

// Suppressed reports whether a synthesized key was sent within the window.
func (i *Interceptor) Suppressed() bool {
	return i.suppressed.Load()
}

// Decide reports whether ev should dock the panel.
func (i *Interceptor) Decide(ev KeyEvent) bool {
	switch {
	case !ev.Down:
		return false
	case i.suppressed.Load():
		return false
	case ev.Injected:
		return false
	case IsModifier(ev.VKCode):
		// Held for a chord; the key that completes it decides.
		return false
	case !i.target.Visible():
		return false
	case !i.hideOnType():
		return false
	}
	return i.target.Undocked()
}

// Handle processes one hook event. It runs on the consumer goroutine and
// reports whether a dock request was posted.
func (i *Interceptor) Handle(ev KeyEvent) bool {
	// Listeners track physical key state even inside a suppress window,
	// otherwise a key released during it would stay held.
	if !ev.Injected {
		i.mu.Lock()
		listeners := append([]KeyListener{}, i.listeners...)
		i.mu.Unlock()

		consumed := false
		for _, fn := range listeners {
			if fn(ev) {
				consumed = true
			}
		}
		if consumed {
			return false
		}
	}

	if !i.Decide(ev) {
		return false
	}
	i.poster.Post(func() {
		if i.target.Undocked() {
			i.target.RequestDock(true)
		}
	})
	return true
}

// push hands an event from the hook thread to the consumer without
// blocking. Events are dropped when the consumer falls behind.
func (i *Interceptor) push(ev KeyEvent) {
	select {
	case i.events <- ev:
	default:
	}
}

func (i *Interceptor) consume(events <-chan KeyEvent, done chan<- struct{}) {
	defer close(done)
	for ev := range events {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Input: Recovered from panic handling key: %v", r)
				}
			}()
			i.Handle(ev)
		}()
	}
}
