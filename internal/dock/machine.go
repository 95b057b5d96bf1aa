package dock

import (
	"log"
	"sync"
	"time"

	"floatpad/internal/animate"
	"floatpad/internal/config"
	"floatpad/internal/geom"
)

// MinSaneWidth is the width a frame must exceed to be remembered as the
// undocked panel. It keeps a transient 1x1 frame from being persisted.
const MinSaneWidth = 100

// ShakeInterval is the delay between two frames of the attention shake.
const ShakeInterval = 30 * time.Millisecond

// State is the dock state of the panel.
type State int

const (
	Undocked State = iota
	Docked
	Transitioning
)

func (s State) String() string {
	switch s {
	case Undocked:
		return "undocked"
	case Docked:
		return "docked"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// View selects which face of the panel is shown.
type View int

const (
	// ViewPanel is the full interactive pad
	ViewPanel View = iota
	// ViewTab is the minimal edge tab
	ViewTab
)

// Window is the panel window as seen by the state machine.
type Window interface {
	Geometry() (geom.Rect, error)
	SetGeometry(r geom.Rect)
	Pointer() (geom.Point, error)
	Monitor() geom.Monitor
	ShowView(v View, edge Edge)
}

// Store persists dock-related preferences.
type Store interface {
	Preferences() config.Preferences
	Update(fn func(*config.Preferences)) error
}

// Clock is reset on undock so the idle timer starts over.
type Clock interface {
	Reset()
}

// Machine owns the dock state. Its mutating methods run on the UI loop; the
// read accessors may be called from any goroutine.
type Machine struct {
	win      Window
	planner  *Planner
	anim     *animate.Animator
	store    Store
	clock    Clock
	steps    int
	interval time.Duration

	// UI loop only.
	saved    geom.Rect
	hasSaved bool

	mu       sync.Mutex
	state    State
	target   State
	edge     Edge
	onChange []func(State)
}

// NewMachine creates an undocked machine. The undocked frame starts from the
// stored geometry, falling back to the default when it is missing or
// degenerate.
func NewMachine(win Window, planner *Planner, anim *animate.Animator, store Store, clock Clock) *Machine {
	m := &Machine{
		win:      win,
		planner:  planner,
		anim:     anim,
		store:    store,
		clock:    clock,
		steps:    animate.DefaultSteps,
		interval: animate.DefaultInterval,
		state:    Undocked,
		target:   Undocked,
	}
	if r, err := geom.ParseSane(store.Preferences().Geometry, MinSaneWidth); err == nil {
		m.saved, m.hasSaved = r, true
	}
	return m
}

// SetTiming overrides the frame count and frame interval of transitions.
func (m *Machine) SetTiming(steps int, interval time.Duration) {
	m.steps, m.interval = steps, interval
}

// OnChange registers fn to run on the UI loop whenever a transition settles.
func (m *Machine) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Edge returns the edge of the current or most recent dock.
func (m *Machine) Edge() Edge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edge
}

// heading returns the steady state the machine is in or moving to.
func (m *Machine) heading() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Transitioning {
		return m.target
	}
	return m.state
}

// Undocked reports whether the panel is, or is becoming, fully shown.
func (m *Machine) Undocked() bool { return m.heading() == Undocked }

// Docked reports whether the panel is, or is becoming, a tab.
func (m *Machine) Docked() bool { return m.heading() == Docked }

// RequestDock moves the panel to its tab. It is a no-op when the panel is
// docked or already docking; a running undock is superseded.
func (m *Machine) RequestDock(animated bool) {
	if m.heading() == Docked {
		return
	}
	m.dock(animated, false)
}

// ForceDefaultDock snaps the tab to the top edge near the left corner,
// whatever the current state.
func (m *Machine) ForceDefaultDock() {
	m.dock(false, true)
}

// Reveal snaps the panel back to its tab position without animation, e.g.
// after it was hidden to the tray.
func (m *Machine) Reveal() {
	m.dock(false, false)
}

// RequestUndock restores the full panel. It is a no-op unless the panel is
// docked or docking.
func (m *Machine) RequestUndock() {
	if m.heading() != Docked {
		return
	}
	to := m.restoreRect()
	cur, err := m.win.Geometry()
	if err != nil {
		log.Printf("Dock: Cannot read window geometry, restoring without animation: %v", err)
	}
	m.enter(Undocked, m.Edge(), cur, to, err == nil)
	if m.clock != nil {
		m.clock.Reset()
	}
}

// Toggle docks an undocked panel and undocks a docked one.
func (m *Machine) Toggle() {
	if m.heading() == Docked {
		m.RequestUndock()
		return
	}
	m.RequestDock(true)
}

// SnapAfterDrag is called when a drag of the window ends. A release near
// the left, right or top edge docks there, recomputing the edge from the
// pointer; any other release keeps the new position. It reports whether the
// release docked the panel.
func (m *Machine) SnapAfterDrag(dragStart geom.Rect) bool {
	cur, err := m.win.Geometry()
	if err != nil {
		log.Printf("Dock: Cannot read window geometry after drag: %v", err)
		return false
	}
	if geom.Distance(cur, dragStart) < MinDragDistance*MinDragDistance {
		return false
	}

	docked := m.heading() == Docked
	if !m.planner.ShouldSnap(cur, m.win.Monitor()) {
		if !docked && cur.Width > MinSaneWidth {
			m.saved, m.hasSaved = cur, true
		}
		m.store.Update(func(p *config.Preferences) {
			if docked {
				p.LastDockGeo = cur.String()
			} else {
				p.Geometry = cur.String()
			}
		})
		return false
	}

	m.store.Update(func(p *config.Preferences) {
		p.LastDockGeo, p.LastDockEdge = "", ""
	})
	m.dock(true, false)
	return true
}

// RememberGeometry records the current frame as the undocked geometry after
// the user resized or moved the full panel.
func (m *Machine) RememberGeometry() {
	if m.State() != Undocked {
		return
	}
	cur, err := m.win.Geometry()
	if err != nil || cur.Width <= MinSaneWidth {
		return
	}
	m.saved, m.hasSaved = cur, true
	m.store.Update(func(p *config.Preferences) { p.Geometry = cur.String() })
}

// ResetSize returns the full panel to the default size, keeping its origin.
func (m *Machine) ResetSize() {
	def, _ := geom.ParseRect(config.DefaultGeometry)
	if m.State() != Undocked {
		base := m.restoreRect()
		m.saved, m.hasSaved = base.WithSize(def.Width, def.Height), true
		m.store.Update(func(p *config.Preferences) { p.Geometry = m.saved.String() })
		return
	}
	cur, err := m.win.Geometry()
	if err != nil {
		return
	}
	r := cur.WithSize(def.Width, def.Height)
	m.win.SetGeometry(r)
	m.saved, m.hasSaved = r, true
	m.store.Update(func(p *config.Preferences) { p.Geometry = r.String() })
}

// Attention shakes the panel in place so it is easy to spot.
func (m *Machine) Attention() {
	if m.State() == Transitioning {
		return
	}
	cur, err := m.win.Geometry()
	if err != nil {
		return
	}
	m.anim.Shake(cur, ShakeInterval, m.win.SetGeometry)
}

func (m *Machine) dock(animated, forceTopLeft bool) {
	cur, err := m.win.Geometry()
	if err != nil {
		log.Printf("Dock: Cannot read window geometry, dock request dropped: %v", err)
		return
	}

	saveGeometry := false
	if m.State() == Undocked && cur.Width > MinSaneWidth {
		m.saved, m.hasSaved = cur, true
		saveGeometry = true
	}

	prefs := m.store.Preferences()
	topLeft := forceTopLeft || prefs.AlwaysDefaultDock

	var remembered *geom.Rect
	if !topLeft && prefs.LastDockGeo != "" {
		r, err := geom.ParseRect(prefs.LastDockGeo)
		if err != nil {
			log.Printf("Dock: Saved tab position is unreadable, dock request dropped: %v", err)
			m.store.Update(func(p *config.Preferences) {
				p.LastDockGeo, p.LastDockEdge = "", ""
			})
			return
		}
		remembered = &r
	}

	pointer, err := m.win.Pointer()
	if err != nil {
		pointer = cur.Center()
	}
	place := m.planner.Plan(cur, m.win.Monitor(), pointer, topLeft, remembered)
	if remembered != nil {
		if e, ok := ParseEdge(prefs.LastDockEdge); ok {
			place.Edge, place.Anchor = e, anchorOf(e, place.Rect)
		}
	}

	m.enter(Docked, place.Edge, cur, place.Rect, animated)
	m.store.Update(func(p *config.Preferences) {
		p.LastDockGeo = place.Rect.String()
		p.LastDockEdge = place.Edge.String()
		if saveGeometry {
			p.Geometry = cur.String()
		}
	})
}

// enter starts a transition. The state flag and the visible face flip
// together before the first frame so clicks never land on the wrong face.
func (m *Machine) enter(target State, edge Edge, from, to geom.Rect, animated bool) {
	m.mu.Lock()
	m.state = Transitioning
	m.target = target
	m.edge = edge
	m.mu.Unlock()

	if target == Docked {
		m.win.ShowView(ViewTab, edge)
	} else {
		m.win.ShowView(ViewPanel, edge)
	}

	if !animated {
		m.anim.Cancel()
		m.win.SetGeometry(to)
		m.settle(target)
		return
	}
	m.anim.Animate(from, to, m.steps, m.interval, animate.EaseOutCubic, m.win.SetGeometry, func() {
		m.settle(target)
	})
}

func (m *Machine) settle(target State) {
	m.mu.Lock()
	m.state = target
	m.target = target
	callbacks := append([]func(State){}, m.onChange...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(target)
	}
}

func (m *Machine) restoreRect() geom.Rect {
	if m.hasSaved && m.saved.Sane(MinSaneWidth) {
		return m.saved
	}
	if r, err := geom.ParseSane(m.store.Preferences().Geometry, MinSaneWidth); err == nil {
		return r
	}
	def, _ := geom.ParseRect(config.DefaultGeometry)
	return def
}
