// Package idle tracks the last user interaction with the panel and docks it
// once the user has looked away for long enough.
package idle

import (
	"math"
	"sync/atomic"
	"time"
)

// State is the interaction clock shared by the UI loop and the poller.
// Writers run on the UI loop; readers may be on any goroutine. Times are
// kept as offsets from base so time.Now's monotonic reading is used and a
// wall clock step does not stall or trigger auto-dock.
type State struct {
	now        func() time.Time
	base       time.Time
	last       atomic.Int64
	paused     atomic.Bool
	graceUntil atomic.Int64
}

// NewState creates a clock that starts now.
func NewState() *State {
	return NewStateWithClock(time.Now)
}

// NewStateWithClock creates a clock driven by now.
func NewStateWithClock(now func() time.Time) *State {
	s := &State{now: now, base: now()}
	s.graceUntil.Store(math.MinInt64)
	return s
}

func (s *State) elapsed() int64 {
	return int64(s.now().Sub(s.base))
}

// Touch records an interaction.
func (s *State) Touch() {
	s.last.Store(s.elapsed())
}

// Reset restarts the idle timer.
func (s *State) Reset() { s.Touch() }

// Since returns how long ago the last interaction was, never less than zero.
func (s *State) Since() time.Duration {
	d := time.Duration(s.elapsed() - s.last.Load())
	if d < 0 {
		return 0
	}
	return d
}

// Pause holds auto-dock until Resume or until the pointer returns to the
// panel.
func (s *State) Pause() { s.paused.Store(true) }

// Resume clears a pause.
func (s *State) Resume() { s.paused.Store(false) }

// Paused reports whether auto-dock is on hold.
func (s *State) Paused() bool { return s.paused.Load() }

// StartGrace suppresses auto-dock for d, e.g. while an OS panel opened from
// the pad is in use.
func (s *State) StartGrace(d time.Duration) {
	s.graceUntil.Store(s.elapsed() + int64(d))
}

// InGrace reports whether a grace window is still open.
func (s *State) InGrace() bool {
	return s.elapsed() < s.graceUntil.Load()
}

// Suppressed reports whether auto-dock must wait.
func (s *State) Suppressed() bool {
	return s.Paused() || s.InGrace()
}
