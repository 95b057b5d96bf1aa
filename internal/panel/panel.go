// Package panel turns pointer input on the full panel into key presses and
// dock requests. All methods run on the UI loop.
package panel

import (
	"log"
	"strings"
	"time"

	"floatpad/internal/config"
	"floatpad/internal/dock"
	"floatpad/internal/geom"
	"floatpad/internal/pad"
)

const (
	// LongPressDelay is how long a key must be held for its hold action.
	LongPressDelay = 500 * time.Millisecond

	// RepeatDelay and RepeatInterval drive auto-repeat keys.
	RepeatDelay    = 400 * time.Millisecond
	RepeatInterval = 80 * time.Millisecond

	// AttentionDelay lets the window settle before it shakes.
	AttentionDelay = 100 * time.Millisecond
)

// Keys sends synthesized input.
type Keys interface {
	PressKey(name string) error
	Hotkey(keys ...string) error
	TypeText(text string) error
}

// View is the window as seen by the controller.
type View interface {
	Invalidate()
	Show()
	Hide()
	Visible() bool
	SetGlass(on bool)
}

// Scheduler runs fn on the UI loop after d.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Clock records interaction with the panel.
type Clock interface {
	Touch()
	StartGrace(d time.Duration)
	Pause()
	Resume()
}

// Store persists preferences.
type Store interface {
	Preferences() config.Preferences
	Update(fn func(*config.Preferences)) error
}

// Controller owns the pad state: the current layout, shift and caps, and
// the key being held.
type Controller struct {
	machine *dock.Machine
	store   Store
	clock   Clock
	keys    Keys
	view    View
	sched   Scheduler

	layout pad.Layout
	// saved is the layout the user chose; automatic switches leave it alone.
	saved string
	shift bool
	caps  bool

	// held is the key under the pointer; heldGen invalidates its timers.
	held     *pad.Key
	heldGen  uint64
	holdDone bool

	quit func()
}

// New creates a controller showing the stored layout.
func New(machine *dock.Machine, store Store, clock Clock, keys Keys, view View, sched Scheduler) *Controller {
	c := &Controller{
		machine: machine,
		store:   store,
		clock:   clock,
		keys:    keys,
		view:    view,
		sched:   sched,
		layout:  pad.Numpad,
	}
	c.saved = store.Preferences().Layout
	if l, ok := pad.ByName(c.saved); ok {
		c.layout = l
	}
	return c
}

// Layout returns the name of the current layout.
func (c *Controller) Layout() string { return c.layout.Name }

// CurrentLayout returns the current layout.
func (c *Controller) CurrentLayout() pad.Layout { return c.layout }

// Shift reports whether one-shot shift is armed.
func (c *Controller) Shift() bool { return c.shift }

// Caps reports whether caps lock is on.
func (c *Controller) Caps() bool { return c.caps }

// SetLayout switches to the named layout and remembers it.
func (c *Controller) SetLayout(name string) { c.switchLayout(name, true) }

// SwitchLayout shows the named layout for now without saving it, e.g. for
// the foreground application.
func (c *Controller) SwitchLayout(name string) { c.switchLayout(name, false) }

func (c *Controller) switchLayout(name string, persist bool) {
	l, ok := pad.ByName(name)
	if !ok {
		log.Printf("Panel: Unknown layout %q", name)
		return
	}
	if persist && c.saved != l.Name {
		c.saved = l.Name
		c.store.Update(func(p *config.Preferences) { p.Layout = l.Name })
	}
	if l.Name == c.layout.Name {
		return
	}
	c.cancelHeld()
	c.layout = l
	c.shift = false
	c.view.Invalidate()
}

// KeyDown starts a press on a pad key.
func (c *Controller) KeyDown(k pad.Key) {
	c.clock.Touch()
	c.cancelHeld()
	key := k
	c.held = &key
	c.holdDone = false
	gen := c.heldGen

	switch {
	case k.Hold != nil:
		// Tap or hold is decided on release or after the delay.
		c.sched.After(LongPressDelay, func() {
			if gen != c.heldGen || c.held == nil {
				return
			}
			c.holdDone = true
			c.Fire(*k.Hold)
		})
	case k.Repeat:
		c.Fire(k.Action)
		c.sched.After(RepeatDelay, func() { c.repeat(gen, k.Action) })
	default:
		c.Fire(k.Action)
	}
	c.view.Invalidate()
}

// KeyUp ends the press started by KeyDown.
func (c *Controller) KeyUp() {
	if c.held == nil {
		return
	}
	k := *c.held
	fireTap := k.Hold != nil && !c.holdDone
	c.cancelHeld()
	if fireTap {
		c.Fire(k.Action)
	}
	c.view.Invalidate()
}

// Held returns the key being pressed, if any.
func (c *Controller) Held() (pad.Key, bool) {
	if c.held == nil {
		return pad.Key{}, false
	}
	return *c.held, true
}

func (c *Controller) repeat(gen uint64, a pad.Action) {
	if gen != c.heldGen || c.held == nil {
		return
	}
	c.Fire(a)
	c.sched.After(RepeatInterval, func() { c.repeat(gen, a) })
}

func (c *Controller) cancelHeld() {
	c.heldGen++
	c.held = nil
	c.holdDone = false
}

// Fire performs an action.
func (c *Controller) Fire(a pad.Action) {
	c.clock.Touch()

	var err error
	switch a.Kind {
	case pad.Press:
		for _, k := range a.Keys {
			if err = c.keys.PressKey(k); err != nil {
				break
			}
		}
	case pad.Text:
		err = c.keys.TypeText(a.Text)
	case pad.Letter:
		s := a.Text
		if c.shift || c.caps {
			s = strings.ToUpper(s)
		}
		err = c.keys.TypeText(s)
		if c.shift {
			c.shift = false
			c.view.Invalidate()
		}
	case pad.Hotkey:
		err = c.keys.Hotkey(a.Keys...)
	case pad.Shift:
		c.shift = !c.shift
		c.view.Invalidate()
	case pad.Caps:
		c.caps = !c.caps
		c.view.Invalidate()
	case pad.Cycle:
		c.SetLayout(pad.Next(c.layout.Name))
	case pad.Emoji:
		c.OpenEmoji()
	case pad.Dock:
		c.machine.RequestDock(true)
	}
	if err != nil {
		log.Printf("Panel: Failed to send keys: %v", err)
	}
}

// OpenEmoji opens the OS emoji panel and holds auto-dock for the grace
// period so the panel stays put while the user picks.
func (c *Controller) OpenEmoji() {
	grace := time.Duration(c.store.Preferences().GracePeriod) * time.Second
	c.clock.StartGrace(grace)
	if err := c.keys.Hotkey("win", "."); err != nil {
		log.Printf("Panel: Failed to open emoji panel: %v", err)
	}
}

// Scroll changes the volume when the wheel turns over the scroll row.
func (c *Controller) Scroll(k pad.Key, delta int) {
	if c.layout.ScrollRow < 0 || k.Row != c.layout.ScrollRow || delta == 0 {
		return
	}
	key := "volumedown"
	if delta > 0 {
		key = "volumeup"
	}
	c.Fire(pad.Action{Kind: pad.Press, Keys: []string{key}})
}

// MiddleClick sends Shift+Enter.
func (c *Controller) MiddleClick() {
	c.Fire(pad.Action{Kind: pad.Hotkey, Keys: []string{"shift", "enter"}})
}

// TabClicked undocks the panel.
func (c *Controller) TabClicked() {
	c.clock.Resume()
	c.machine.RequestUndock()
}

// DragStarted holds auto-dock while the window follows the pointer.
func (c *Controller) DragStarted() {
	c.clock.Pause()
}

// DragEnded docks or remembers the window after a move.
func (c *Controller) DragEnded(start geom.Rect) {
	c.clock.Resume()
	c.clock.Touch()
	c.machine.SnapAfterDrag(start)
}

// ResizeEnded remembers the new size.
func (c *Controller) ResizeEnded() {
	c.clock.Resume()
	c.clock.Touch()
	c.machine.RememberGeometry()
}

// Show brings the panel back from the tray at its tab and shakes it.
func (c *Controller) Show() {
	c.view.Show()
	c.machine.Reveal()
	c.sched.After(AttentionDelay, c.machine.Attention)
}

// Hide hides the panel to the tray.
func (c *Controller) Hide() {
	c.cancelHeld()
	c.view.Hide()
}

// ToggleDock is bound to the reveal hotkey. A hidden panel comes back
// fully shown; otherwise the panel flips between tab and full view.
func (c *Controller) ToggleDock() {
	c.clock.Touch()
	if !c.view.Visible() {
		c.view.Show()
		c.machine.RequestUndock()
		return
	}
	c.machine.Toggle()
}

// DockToDefault moves the tab to the top-left default spot.
func (c *Controller) DockToDefault() {
	if !c.view.Visible() {
		c.view.Show()
	}
	c.machine.ForceDefaultDock()
	c.sched.After(AttentionDelay, c.machine.Attention)
}

// ResetSize restores the default panel size.
func (c *Controller) ResetSize() {
	c.machine.ResetSize()
}

// ToggleGlass flips the acrylic backdrop.
func (c *Controller) ToggleGlass() {
	var on bool
	c.store.Update(func(p *config.Preferences) {
		p.UseGlass = !p.UseGlass
		on = p.UseGlass
	})
	c.view.SetGlass(on)
}

// SetQuit registers what the Quit menu entry does.
func (c *Controller) SetQuit(fn func()) { c.quit = fn }

// SetTimeout changes the idle auto-dock timeout in seconds.
func (c *Controller) SetTimeout(seconds int) {
	c.store.Update(func(p *config.Preferences) { p.Timeout = seconds })
	c.clock.Touch()
}

// SetHideOnType turns docking on physical typing on or off.
func (c *Controller) SetHideOnType(on bool) {
	c.store.Update(func(p *config.Preferences) { p.HideOnType = on })
}

// SetAlwaysDefaultDock pins docking to the top-left spot.
func (c *Controller) SetAlwaysDefaultDock(on bool) {
	c.store.Update(func(p *config.Preferences) { p.AlwaysDefaultDock = on })
}

// ApplyPreferences re-reads preferences edited outside the panel.
func (c *Controller) ApplyPreferences(p config.Preferences) {
	c.view.SetGlass(p.UseGlass)
	if p.Layout == c.saved {
		return
	}
	c.saved = p.Layout
	if l, ok := pad.ByName(p.Layout); ok && l.Name != c.layout.Name {
		c.cancelHeld()
		c.layout = l
		c.view.Invalidate()
	}
}
