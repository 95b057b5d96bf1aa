package dock

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"floatpad/internal/animate"
	"floatpad/internal/config"
	"floatpad/internal/geom"
)

type manualScheduler struct {
	pending []func()
}

func (s *manualScheduler) After(_ time.Duration, fn func()) {
	s.pending = append(s.pending, fn)
}

func (s *manualScheduler) step() bool {
	if len(s.pending) == 0 {
		return false
	}
	fn := s.pending[0]
	s.pending = s.pending[1:]
	fn()
	return true
}

func (s *manualScheduler) drain() {
	for s.step() {
	}
}

type fakeWindow struct {
	rect    geom.Rect
	pointer geom.Point
	mon     geom.Monitor
	err     error

	writes []geom.Rect
	views  []View
	// viewAtWrite records the face shown when each frame was
	// written.
	viewAtWrite []View
}

func (w *fakeWindow) Geometry() (geom.Rect, error) { return w.rect, w.err }
func (w *fakeWindow) Pointer() (geom.Point, error) { return w.pointer, nil }
func (w *fakeWindow) Monitor() geom.Monitor        { return w.mon }

func (w *fakeWindow) SetGeometry(r geom.Rect) {
	w.rect = r
	w.writes = append(w.writes, r)
	if len(w.views) > 0 {
		w.viewAtWrite = append(w.viewAtWrite, w.views[len(w.views)-1])
	}
}

func (w *fakeWindow) ShowView(v View, _ Edge) { w.views = append(w.views, v) }

type countingClock struct{ resets int }

func (c *countingClock) Reset() { c.resets++ }

type fixture struct {
	win   *fakeWindow
	sched *manualScheduler
	store *config.Manager
	clock *countingClock
	m     *Machine
}

func newFixture(t *testing.T, edit func(*config.Preferences)) *fixture {
	t.Helper()
	store := config.NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	if edit != nil {
		if err := store.Update(edit); err != nil {
			t.Fatalf("seed prefs: %v", err)
		}
	}
	win := &fakeWindow{
		rect:    geom.Rect{X: 500, Y: 200, Width: 300, Height: 460},
		pointer: geom.Point{X: 900, Y: 10},
		mon:     fullHD,
	}
	sched := &manualScheduler{}
	clock := &countingClock{}
	m := NewMachine(win, NewPlanner(0), animate.New(sched), store, clock)
	return &fixture{win: win, sched: sched, store: store, clock: clock, m: m}
}

func TestDockUndockRoundTrip(t *testing.T) {
	f := newFixture(t, nil)
	start := f.win.rect

	f.m.RequestDock(true)
	if got := f.m.State(); got != Transitioning {
		t.Fatalf("state during dock = %v, want transitioning", got)
	}
	if !f.m.Docked() {
		t.Fatalf("machine must report docking while in flight")
	}
	f.sched.drain()

	if got := f.m.State(); got != Docked {
		t.Fatalf("state = %v, want docked", got)
	}
	want := geom.Rect{X: 860, Y: 0, Width: 80, Height: 20}
	if f.win.rect != want {
		t.Fatalf("docked at %v, want %v", f.win.rect, want)
	}
	prefs := f.store.Preferences()
	if prefs.LastDockGeo != want.String() {
		t.Errorf("last_dock_geo = %q, want %q", prefs.LastDockGeo, want)
	}
	if prefs.Geometry != start.String() {
		t.Errorf("geometry = %q, want %q", prefs.Geometry, start)
	}

	f.m.RequestUndock()
	f.sched.drain()

	if got := f.m.State(); got != Undocked {
		t.Fatalf("state = %v, want undocked", got)
	}
	if f.win.rect != start {
		t.Errorf("undocked at %v, want %v", f.win.rect, start)
	}
	if f.clock.resets != 1 {
		t.Errorf("idle clock reset %d times, want 1", f.clock.resets)
	}
}

func TestRequestDockIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	f.m.RequestDock(true)
	f.sched.drain()

	before := f.store.Preferences()
	writes := len(f.win.writes)

	f.m.RequestDock(true)
	f.m.RequestDock(false)
	f.sched.drain()

	if got := f.m.State(); got != Docked {
		t.Errorf("state = %v, want docked", got)
	}
	if len(f.win.writes) != writes {
		t.Errorf("second dock wrote %d frames", len(f.win.writes)-writes)
	}
	if diff := cmp.Diff(before, f.store.Preferences()); diff != "" {
		t.Errorf("prefs changed (-before +after):\n%s", diff)
	}
}

func TestRequestUndockWhenUndockedIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	f.m.RequestUndock()
	if len(f.win.writes) != 0 || len(f.win.views) != 0 {
		t.Errorf("undock of an undocked panel touched the window")
	}
	if f.clock.resets != 0 {
		t.Errorf("idle clock reset on a no-op undock")
	}
}

func TestViewSwapsBeforeFirstFrame(t *testing.T) {
	f := newFixture(t, nil)
	f.m.RequestDock(true)
	if len(f.win.viewAtWrite) == 0 || f.win.viewAtWrite[0] != ViewTab {
		t.Fatalf("first dock frame written while showing %v", f.win.viewAtWrite)
	}
	f.sched.drain()

	n := len(f.win.viewAtWrite)
	f.m.RequestUndock()
	if f.win.viewAtWrite[n] != ViewPanel {
		t.Errorf("first undock frame written while showing %v", f.win.viewAtWrite[n])
	}
}

func TestDragToLeftEdgeDocksLeft(t *testing.T) {
	f := newFixture(t, nil)
	dragStart := f.win.rect

	f.win.rect = geom.Rect{X: 10, Y: 300, Width: 300, Height: 460}
	f.win.pointer = geom.Point{X: 60, Y: 315}

	if !f.m.SnapAfterDrag(dragStart) {
		t.Fatalf("release near the left edge did not dock")
	}
	f.sched.drain()

	if f.m.State() != Docked || f.m.Edge() != EdgeLeft {
		t.Fatalf("state=%v edge=%v, want docked left", f.m.State(), f.m.Edge())
	}
	want := geom.Rect{X: 0, Y: 275, Width: 20, Height: 80}
	if f.win.rect != want {
		t.Errorf("tab at %v, want %v", f.win.rect, want)
	}
}

func TestDragSnapIgnoresRememberedTab(t *testing.T) {
	f := newFixture(t, func(p *config.Preferences) {
		p.LastDockGeo = "80x20+450+0"
	})
	dragStart := f.win.rect
	f.win.rect = geom.Rect{X: 1880, Y: 500, Width: 300, Height: 460}
	f.win.pointer = geom.Point{X: 1910, Y: 520}

	f.m.SnapAfterDrag(dragStart)
	f.sched.drain()

	if f.m.Edge() != EdgeRight {
		t.Errorf("edge = %v, want right", f.m.Edge())
	}
	if got := f.store.Preferences().LastDockGeo; got == "80x20+450+0" {
		t.Errorf("remembered tab was not replaced")
	}
}

func TestSmallDragIsAClick(t *testing.T) {
	f := newFixture(t, nil)
	start := geom.Rect{X: 12, Y: 300, Width: 300, Height: 460}
	f.win.rect = geom.Rect{X: 10, Y: 302, Width: 300, Height: 460}
	if f.m.SnapAfterDrag(start) {
		t.Errorf("a 2px move must not dock")
	}
	if f.m.State() != Undocked {
		t.Errorf("state = %v, want undocked", f.m.State())
	}
}

func TestDragAwayFromEdgesPersistsGeometry(t *testing.T) {
	f := newFixture(t, nil)
	start := f.win.rect
	f.win.rect = geom.Rect{X: 700, Y: 400, Width: 300, Height: 460}
	if f.m.SnapAfterDrag(start) {
		t.Fatalf("release mid-screen must not dock")
	}
	if got := f.store.Preferences().Geometry; got != "300x460+700+400" {
		t.Errorf("geometry = %q", got)
	}
	if got := f.m.restoreRect(); got != f.win.rect {
		t.Errorf("saved = %v, want %v", got, f.win.rect)
	}
}

func TestDraggingTheTabKeepsItsPosition(t *testing.T) {
	f := newFixture(t, nil)
	f.m.RequestDock(false)

	start := f.win.rect
	f.win.rect = geom.Rect{X: 900, Y: 400, Width: 80, Height: 20}
	f.m.SnapAfterDrag(start)

	if got := f.store.Preferences().LastDockGeo; got != "80x20+900+400" {
		t.Errorf("last_dock_geo = %q", got)
	}
	if got := f.store.Preferences().Geometry; got != "300x460+500+200" {
		t.Errorf("geometry overwritten with the tab: %q", got)
	}
}

func TestRememberedTabIsReusedWithoutReplanning(t *testing.T) {
	f := newFixture(t, func(p *config.Preferences) {
		p.LastDockGeo = "80x20+450+0"
	})
	f.win.pointer = geom.Point{X: 1900, Y: 900}

	f.m.RequestDock(true)
	f.sched.drain()

	want := geom.Rect{X: 450, Y: 0, Width: 80, Height: 20}
	if f.win.rect != want {
		t.Errorf("docked at %v, want %v", f.win.rect, want)
	}
	if f.m.Edge() != EdgeTop {
		t.Errorf("edge = %v, want top", f.m.Edge())
	}
}

func TestUnreadableRememberedTabIsCleared(t *testing.T) {
	f := newFixture(t, func(p *config.Preferences) {
		p.LastDockGeo = "garbage"
	})
	f.m.RequestDock(true)
	f.sched.drain()

	if f.m.State() != Undocked {
		t.Errorf("state = %v, want undocked", f.m.State())
	}
	if len(f.win.writes) != 0 {
		t.Errorf("window moved on a dropped request")
	}
	if got := f.store.Preferences().LastDockGeo; got != "" {
		t.Errorf("last_dock_geo = %q, want cleared", got)
	}

	f.m.RequestDock(true)
	f.sched.drain()
	if f.m.State() != Docked {
		t.Errorf("dock after clearing: state = %v", f.m.State())
	}
}

func TestUndockFallsBackToDefaultGeometry(t *testing.T) {
	f := newFixture(t, nil)
	// A degenerate window frame must never be remembered.
	f.win.rect = geom.Rect{X: 5, Y: 5, Width: 1, Height: 1}
	f.m = NewMachine(f.win, NewPlanner(0), animate.New(f.sched), f.store, f.clock)
	f.store.Update(func(p *config.Preferences) { p.Geometry = "1x1+0+0" })

	f.m.RequestDock(false)
	f.m.RequestUndock()
	f.sched.drain()

	want, _ := geom.ParseRect(config.DefaultGeometry)
	if f.win.rect != want {
		t.Errorf("undocked at %v, want %v", f.win.rect, want)
	}
	if !f.win.rect.Sane(MinSaneWidth) {
		t.Errorf("undocked frame is not sane")
	}
}

func TestUndockSupersedesRunningDock(t *testing.T) {
	f := newFixture(t, nil)
	start := f.win.rect

	settled := []State{}
	f.m.OnChange(func(s State) { settled = append(settled, s) })

	f.m.RequestDock(true)
	f.sched.step()
	f.sched.step()

	f.m.RequestUndock()
	f.sched.drain()

	if f.m.State() != Undocked {
		t.Fatalf("state = %v, want undocked", f.m.State())
	}
	if f.win.rect != start {
		t.Errorf("ended at %v, want %v", f.win.rect, start)
	}
	if diff := cmp.Diff([]State{Undocked}, settled); diff != "" {
		t.Errorf("settled states (-want +got):\n%s", diff)
	}
}

func TestDockDuringUndockProceeds(t *testing.T) {
	f := newFixture(t, nil)
	f.m.RequestDock(false)
	f.m.RequestUndock()
	f.sched.step()

	f.m.RequestDock(true)
	f.sched.drain()
	if f.m.State() != Docked {
		t.Errorf("state = %v, want docked", f.m.State())
	}
}

func TestAlwaysDefaultDock(t *testing.T) {
	f := newFixture(t, func(p *config.Preferences) {
		p.AlwaysDefaultDock = true
		p.LastDockGeo = "20x80+1900+500"
	})
	f.m.RequestDock(true)
	f.sched.drain()

	want := geom.Rect{X: 60, Y: 0, Width: 80, Height: 20}
	if f.win.rect != want {
		t.Errorf("docked at %v, want %v", f.win.rect, want)
	}
}

func TestForceDefaultDockFromDocked(t *testing.T) {
	f := newFixture(t, nil)
	f.win.pointer = geom.Point{X: 1910, Y: 500}
	f.m.RequestDock(false)
	if f.m.Edge() != EdgeRight {
		t.Fatalf("edge = %v, want right", f.m.Edge())
	}

	f.m.ForceDefaultDock()
	want := geom.Rect{X: 60, Y: 0, Width: 80, Height: 20}
	if f.win.rect != want || f.m.State() != Docked {
		t.Errorf("forced dock at %v (%v), want %v", f.win.rect, f.m.State(), want)
	}
	if got := f.store.Preferences().LastDockGeo; got != want.String() {
		t.Errorf("last_dock_geo = %q", got)
	}
}

func TestGeometryErrorDropsDock(t *testing.T) {
	f := newFixture(t, nil)
	f.win.err = errors.New("window gone")
	f.m.RequestDock(true)
	if f.m.State() != Undocked || len(f.win.writes) != 0 {
		t.Errorf("dock went ahead without a readable frame")
	}
}

func TestResetSize(t *testing.T) {
	f := newFixture(t, nil)
	f.win.rect = geom.Rect{X: 40, Y: 50, Width: 600, Height: 700}
	f.m.ResetSize()
	want := geom.Rect{X: 40, Y: 50, Width: 300, Height: 460}
	if f.win.rect != want {
		t.Errorf("rect = %v, want %v", f.win.rect, want)
	}
	if got := f.store.Preferences().Geometry; got != want.String() {
		t.Errorf("geometry = %q", got)
	}
}

func TestToggle(t *testing.T) {
	f := newFixture(t, nil)
	f.m.Toggle()
	f.sched.drain()
	if f.m.State() != Docked {
		t.Fatalf("state = %v, want docked", f.m.State())
	}
	f.m.Toggle()
	f.sched.drain()
	if f.m.State() != Undocked {
		t.Errorf("state = %v, want undocked", f.m.State())
	}
}

func TestStoredEdgeWinsOverInference(t *testing.T) {
	f := newFixture(t, func(p *config.Preferences) {
		p.LastDockGeo = "80x20+0+500"
		p.LastDockEdge = "left"
	})
	f.m.RequestDock(false)
	if f.m.Edge() != EdgeLeft {
		t.Errorf("edge = %v, want left", f.m.Edge())
	}

	f.m.RequestUndock()
	f.store.Update(func(p *config.Preferences) { p.LastDockEdge = "" })
	f.m.RequestDock(false)
	if f.m.Edge() != EdgeTop {
		t.Errorf("edge without a stored edge = %v, want top", f.m.Edge())
	}
}
