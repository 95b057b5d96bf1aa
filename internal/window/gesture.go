package window

import (
	"floatpad/internal/geom"
	"floatpad/internal/pad"
)

// Mode is what a pointer press turned into.
type Mode int

const (
	ModeIdle Mode = iota
	ModeMove
	ModeResize
	ModeKey
	ModeTab
)

// clickSlop is the squared distance under which a press counts as a click.
const clickSlop = 25

// Gesture tracks one press-drag-release sequence in screen coordinates.
type Gesture struct {
	mode   Mode
	origin geom.Point
	start  geom.Rect
	moved  bool
}

// Begin starts a gesture at pointer p over a window at r. The mode follows
// what was hit: the title bar moves, the grip resizes, a key presses, and
// anywhere on the docked tab drags the tab.
func (g *Gesture) Begin(docked bool, hit pad.Hit, p geom.Point, r geom.Rect) Mode {
	g.origin, g.start, g.moved = p, r, false
	switch {
	case docked:
		g.mode = ModeTab
	case hit.Region == pad.RegionTitle:
		g.mode = ModeMove
	case hit.Region == pad.RegionGrip:
		g.mode = ModeResize
	case hit.Region == pad.RegionKey:
		g.mode = ModeKey
	default:
		g.mode = ModeIdle
	}
	return g.mode
}

// Mode returns the active mode.
func (g *Gesture) Mode() Mode { return g.mode }

// Start returns the window rect when the gesture began.
func (g *Gesture) Start() geom.Rect { return g.start }

// Update follows the pointer. It returns the new window rect and true when
// the window should move or grow.
func (g *Gesture) Update(p geom.Point) (geom.Rect, bool) {
	dx, dy := p.X-g.origin.X, p.Y-g.origin.Y
	if dx*dx+dy*dy >= clickSlop {
		g.moved = true
	}
	switch g.mode {
	case ModeMove, ModeTab:
		if !g.moved {
			return g.start, false
		}
		r := g.start
		r.X += dx
		r.Y += dy
		return r, true
	case ModeResize:
		return g.start.WithSize(max(MinWidth, g.start.Width+dx), max(MinHeight, g.start.Height+dy)), true
	}
	return g.start, false
}

// End finishes the gesture and reports its mode and whether the pointer
// travelled far enough to count as a drag.
func (g *Gesture) End() (Mode, bool) {
	mode, moved := g.mode, g.moved
	g.mode = ModeIdle
	return mode, moved
}
