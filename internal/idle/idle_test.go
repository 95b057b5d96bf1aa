package idle

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"floatpad/internal/animate"
	"floatpad/internal/config"
	"floatpad/internal/dock"
	"floatpad/internal/geom"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// syncPoster runs posted closures immediately.
type syncPoster struct{ posted int }

func (p *syncPoster) Post(fn func()) bool {
	p.posted++
	fn()
	return true
}

type fakePanel struct {
	visible bool
	bounds  geom.Rect
	pointer geom.Point
	err     error
	panicky bool
}

func (p *fakePanel) Visible() bool { return p.visible }

func (p *fakePanel) Bounds() (geom.Rect, error) {
	if p.panicky {
		panic("boom")
	}
	return p.bounds, p.err
}

func (p *fakePanel) Pointer() (geom.Point, error) { return p.pointer, p.err }

type fakeDocker struct {
	undocked bool
	requests int
}

func (d *fakeDocker) Undocked() bool { return d.undocked }
func (d *fakeDocker) RequestDock(bool) {
	d.requests++
	d.undocked = false
}

func seconds(n int) func() time.Duration {
	return func() time.Duration { return time.Duration(n) * time.Second }
}

func newTestMonitor(timeout func() time.Duration) (*Monitor, *fakeClock, *fakePanel, *fakeDocker, *State) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	state := NewStateWithClock(clock.now)
	panel := &fakePanel{
		visible: true,
		bounds:  geom.Rect{X: 500, Y: 200, Width: 300, Height: 460},
		pointer: geom.Point{X: 10, Y: 10},
	}
	docker := &fakeDocker{undocked: true}
	return NewMonitor(state, panel, docker, &syncPoster{}, timeout), clock, panel, docker, state
}

func TestClockStepBackDoesNotStallTimer(t *testing.T) {
	m, clock, _, docker, state := newTestMonitor(seconds(5))

	clock.advance(-time.Hour)
	if got := state.Since(); got != 0 {
		t.Errorf("Since() after a step back = %v, want 0", got)
	}
	clock.advance(10 * time.Second)
	state.Touch()
	if got := state.Since(); got != 0 {
		t.Fatalf("Since() after Touch = %v, want 0", got)
	}
	if state.InGrace() {
		t.Errorf("step back opened a grace window")
	}

	clock.advance(6 * time.Second)
	m.Tick()
	if docker.requests != 1 {
		t.Errorf("requests = %d, want 1 once the timeout passed", docker.requests)
	}
}

func TestStateUsesMonotonicClock(t *testing.T) {
	s := NewState()
	s.Touch()
	if got := s.Since(); got < 0 || got > time.Second {
		t.Errorf("Since() = %v right after Touch", got)
	}
}

func TestStateGrace(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := NewStateWithClock(clock.now)
	s.StartGrace(15 * time.Second)
	if !s.Suppressed() {
		t.Fatalf("grace window must suppress")
	}
	clock.advance(15 * time.Second)
	if s.Suppressed() {
		t.Errorf("grace window still open after it elapsed")
	}
	s.Pause()
	if !s.Suppressed() {
		t.Errorf("pause must suppress")
	}
	s.Resume()
	if s.Suppressed() {
		t.Errorf("resume must clear the pause")
	}
}

func TestTickDocksAfterTimeout(t *testing.T) {
	m, clock, _, docker, _ := newTestMonitor(seconds(5))

	clock.advance(4 * time.Second)
	m.Tick()
	if docker.requests != 0 {
		t.Fatalf("docked before the timeout")
	}

	clock.advance(2 * time.Second)
	m.Tick()
	if docker.requests != 1 {
		t.Fatalf("requests = %d, want 1", docker.requests)
	}

	clock.advance(time.Second)
	m.Tick()
	if docker.requests != 1 {
		t.Errorf("docked panel got another request")
	}
}

func TestTickPointerInsideTouches(t *testing.T) {
	m, clock, panel, docker, state := newTestMonitor(seconds(5))
	state.Pause()
	clock.advance(10 * time.Second)
	panel.pointer = geom.Point{X: 600, Y: 300}

	m.Tick()
	if docker.requests != 0 {
		t.Errorf("docked while the pointer was on the panel")
	}
	if state.Since() != 0 {
		t.Errorf("pointer on the panel did not touch the clock")
	}
	if state.Paused() {
		t.Errorf("pointer on the panel did not clear the pause")
	}
}

func TestTickRespectsSuppression(t *testing.T) {
	tests := []struct {
		name     string
		timeout  func() time.Duration
		setup    func(*State)
		advance  time.Duration
		wantDock int
	}{
		{"never sentinel", seconds(config.NeverTimeout), nil, time.Hour, 0},
		{"paused", seconds(5), func(s *State) { s.Pause() }, time.Minute, 0},
		{"inside grace", seconds(5), func(s *State) { s.StartGrace(15 * time.Second) }, 10 * time.Second, 0},
		{"after grace", seconds(5), func(s *State) { s.StartGrace(15 * time.Second) }, 16 * time.Second, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock, _, docker, state := newTestMonitor(tt.timeout)
			if tt.setup != nil {
				tt.setup(state)
			}
			clock.advance(tt.advance)
			m.Tick()
			if docker.requests != tt.wantDock {
				t.Errorf("requests = %d, want %d", docker.requests, tt.wantDock)
			}
		})
	}
}

func TestTickHiddenPanel(t *testing.T) {
	m, clock, panel, docker, _ := newTestMonitor(seconds(5))
	panel.visible = false
	clock.advance(time.Minute)
	if wait := m.Tick(); wait != HiddenInterval {
		t.Errorf("wait = %v, want %v", wait, HiddenInterval)
	}
	if docker.requests != 0 {
		t.Errorf("hidden panel was docked")
	}
}

func TestTickSurvivesErrorsAndPanics(t *testing.T) {
	m, clock, panel, docker, _ := newTestMonitor(seconds(5))
	clock.advance(time.Minute)

	panel.err = errors.New("no window")
	m.Tick()
	m.Tick()
	if docker.requests != 0 {
		t.Fatalf("docked on a failed query")
	}

	panel.err = nil
	panel.panicky = true
	if wait := m.Tick(); wait != PollInterval {
		t.Errorf("wait after panic = %v", wait)
	}

	panel.panicky = false
	m.Tick()
	if docker.requests != 1 {
		t.Errorf("requests = %d after recovery, want 1", docker.requests)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	m, _, _, _, _ := newTestMonitor(seconds(5))
	m.interval = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// dockWindow is a minimal window for driving a real dock.Machine.
type dockWindow struct {
	rect    geom.Rect
	pointer geom.Point
}

func (w *dockWindow) Geometry() (geom.Rect, error)  { return w.rect, nil }
func (w *dockWindow) SetGeometry(r geom.Rect)       { w.rect = r }
func (w *dockWindow) Pointer() (geom.Point, error)  { return w.pointer, nil }
func (w *dockWindow) Monitor() geom.Monitor         { return geom.Monitor{Right: 1920, Bottom: 1080} }
func (w *dockWindow) ShowView(dock.View, dock.Edge) {}
func (w *dockWindow) Visible() bool                 { return true }
func (w *dockWindow) Bounds() (geom.Rect, error)    { return w.rect, nil }

type queueScheduler struct{ pending []func() }

func (s *queueScheduler) After(_ time.Duration, fn func()) { s.pending = append(s.pending, fn) }

func (s *queueScheduler) drain() {
	for len(s.pending) > 0 {
		fn := s.pending[0]
		s.pending = s.pending[1:]
		fn()
	}
}

func TestIdleTimeoutDocksPanel(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	state := NewStateWithClock(clock.now)
	win := &dockWindow{
		rect:    geom.Rect{X: 500, Y: 200, Width: 300, Height: 460},
		pointer: geom.Point{X: 1000, Y: 40},
	}
	store := config.NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	sched := &queueScheduler{}
	machine := dock.NewMachine(win, dock.NewPlanner(0), animate.New(sched), store, state)

	m := NewMonitor(state, win, machine, &syncPoster{}, seconds(store.Preferences().Timeout))
	clock.advance(6 * time.Second)
	m.Tick()
	sched.drain()

	if got := machine.State(); got != dock.Docked {
		t.Fatalf("state = %v, want docked", got)
	}
	want := geom.Rect{X: 960, Y: 0, Width: 80, Height: 20}
	if win.rect != want {
		t.Errorf("tab at %v, want %v", win.rect, want)
	}
}
