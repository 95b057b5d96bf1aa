package idle

import (
	"context"
	"log"
	"time"

	"floatpad/internal/geom"
)

const (
	// PollInterval is the delay between two checks while the panel is shown.
	PollInterval = 500 * time.Millisecond

	// HiddenInterval is the delay while the panel is hidden to the tray.
	HiddenInterval = time.Second

	// NeverThreshold marks timeouts that mean "never auto-dock".
	NeverThreshold = 9000 * time.Second
)

// Panel is what the poller needs to know about the window.
type Panel interface {
	Visible() bool
	Bounds() (geom.Rect, error)
	Pointer() (geom.Point, error)
}

// Docker receives dock requests.
type Docker interface {
	Undocked() bool
	RequestDock(animated bool)
}

// Poster runs fn on the UI loop.
type Poster interface {
	Post(fn func()) bool
}

// Monitor polls the pointer and docks the panel after a quiet period.
type Monitor struct {
	state   *State
	panel   Panel
	docker  Docker
	poster  Poster
	timeout func() time.Duration

	interval time.Duration
	hidden   time.Duration

	// failing is true while a streak of query errors is in progress.
	failing bool
}

// NewMonitor creates a poller. timeout is read on every tick so preference
// changes apply immediately.
func NewMonitor(state *State, panel Panel, docker Docker, poster Poster, timeout func() time.Duration) *Monitor {
	return &Monitor{
		state:    state,
		panel:    panel,
		docker:   docker,
		poster:   poster,
		timeout:  timeout,
		interval: PollInterval,
		hidden:   HiddenInterval,
	}
}

// Run polls until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	log.Printf("Idle: Monitor started")
	defer log.Printf("Idle: Monitor stopped")

	for {
		wait := m.Tick()
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// Tick runs one check and returns how long to wait before the next one.
func (m *Monitor) Tick() (wait time.Duration) {
	wait = m.interval
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Idle: Recovered from panic in poll: %v", r)
		}
	}()

	if !m.panel.Visible() {
		return m.hidden
	}

	inside, err := m.pointerInside()
	if err != nil {
		if !m.failing {
			log.Printf("Idle: Cannot query pointer or window, will retry: %v", err)
			m.failing = true
		}
		return wait
	}
	if m.failing {
		log.Printf("Idle: Pointer queries recovered")
		m.failing = false
	}

	if inside {
		m.poster.Post(func() {
			m.state.Touch()
			m.state.Resume()
		})
		return wait
	}

	timeout := m.timeout()
	if timeout >= NeverThreshold {
		return wait
	}
	if !m.docker.Undocked() || m.state.Suppressed() {
		return wait
	}
	if m.state.Since() > timeout {
		m.poster.Post(func() {
			// The panel may have been touched since the check.
			if m.state.Since() > m.timeout() && !m.state.Suppressed() {
				m.docker.RequestDock(true)
			}
		})
	}
	return wait
}

func (m *Monitor) pointerInside() (bool, error) {
	b, err := m.panel.Bounds()
	if err != nil {
		return false, err
	}
	p, err := m.panel.Pointer()
	if err != nil {
		return false, err
	}
	return b.Contains(p), nil
}
