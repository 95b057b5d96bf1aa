// Package dock decides where the panel docks and owns the
// docked/undocked state of the window.
package dock

import "floatpad/internal/geom"

const (
	// TabLong and TabShort are the sides of the docked tab.
	TabLong  = 80
	TabShort = 20

	// DefaultSnapThreshold is how close to an edge, in pixels, a drag must
	// end to dock immediately.
	DefaultSnapThreshold = 75

	// TopLeftOffset is the distance from the monitor's left edge used by the
	// "always dock top-left" preference.
	TopLeftOffset = 100

	// MinDragDistance separates a drag from a click on the tab.
	MinDragDistance = 5
)

// Edge is a monitor edge the panel can dock against.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseEdge is the inverse of Edge.String.
func ParseEdge(s string) (Edge, bool) {
	switch s {
	case "top":
		return EdgeTop, true
	case "left":
		return EdgeLeft, true
	case "right":
		return EdgeRight, true
	}
	return EdgeTop, false
}

// Placement is one docking decision.
type Placement struct {
	Edge   Edge
	Anchor geom.Point
	Rect   geom.Rect
}

// Planner computes dock targets.
type Planner struct {
	SnapThreshold int
}

// NewPlanner creates a planner; a non-positive threshold uses the default.
func NewPlanner(snapThreshold int) *Planner {
	if snapThreshold <= 0 {
		snapThreshold = DefaultSnapThreshold
	}
	return &Planner{SnapThreshold: snapThreshold}
}

// Plan returns where the panel should dock.
//
// alwaysTopLeft wins over everything. A remembered tab rect is reused as-is
// so repeated cycles return to the same spot. Otherwise the edge closest to
// the pointer is picked, checking top, left, right in that order so the
// first minimum wins.
func (p *Planner) Plan(current geom.Rect, mon geom.Monitor, pointer geom.Point, alwaysTopLeft bool, remembered *geom.Rect) Placement {
	if alwaysTopLeft {
		return p.tab(EdgeTop, geom.Point{X: mon.Left + TopLeftOffset, Y: mon.Top}, mon)
	}
	if remembered != nil {
		r := *remembered
		edge := InferEdge(r, mon)
		return Placement{Edge: edge, Anchor: anchorOf(edge, r), Rect: r}
	}

	dt := pointer.Y - mon.Top
	dl := pointer.X - mon.Left
	dr := mon.Right - pointer.X

	edge := EdgeTop
	best := dt
	if dl < best {
		edge, best = EdgeLeft, dl
	}
	if dr < best {
		edge = EdgeRight
	}

	var anchor geom.Point
	switch edge {
	case EdgeTop:
		anchor = geom.Point{X: pointer.X, Y: mon.Top}
	case EdgeLeft:
		anchor = geom.Point{X: mon.Left, Y: pointer.Y}
	default:
		anchor = geom.Point{X: mon.Right, Y: pointer.Y}
	}
	return p.tab(edge, anchor, mon)
}

// ShouldSnap reports whether a window released at r is close enough to the
// left, right or top edge to dock right away.
func (p *Planner) ShouldSnap(r geom.Rect, mon geom.Monitor) bool {
	return r.X < mon.Left+p.SnapThreshold ||
		r.X > mon.Right-p.SnapThreshold ||
		r.Y < mon.Top+p.SnapThreshold
}

// tab builds the tab rect for an edge, centered on the anchor and kept on
// the monitor.
func (p *Planner) tab(edge Edge, anchor geom.Point, mon geom.Monitor) Placement {
	anchor = mon.Clamp(anchor)
	var r geom.Rect
	switch edge {
	case EdgeTop:
		r = geom.Rect{X: anchor.X - TabLong/2, Y: anchor.Y, Width: TabLong, Height: TabShort}
	case EdgeLeft:
		r = geom.Rect{X: anchor.X, Y: anchor.Y - TabLong/2, Width: TabShort, Height: TabLong}
	default:
		r = geom.Rect{X: anchor.X - TabShort, Y: anchor.Y - TabLong/2, Width: TabShort, Height: TabLong}
	}
	return Placement{Edge: edge, Anchor: anchor, Rect: mon.Fit(r)}
}

// InferEdge recovers the edge of a persisted tab rect saved without its
// edge. An 80x20 tab is read as top and anything else as the side it sits
// nearest to.
func InferEdge(r geom.Rect, mon geom.Monitor) Edge {
	if r.Width == TabLong && r.Height == TabShort {
		return EdgeTop
	}
	if r.X-mon.Left <= mon.Right-r.Right() {
		return EdgeLeft
	}
	return EdgeRight
}

func anchorOf(edge Edge, r geom.Rect) geom.Point {
	switch edge {
	case EdgeTop:
		return geom.Point{X: r.X + r.Width/2, Y: r.Y}
	case EdgeLeft:
		return geom.Point{X: r.X, Y: r.Y + r.Height/2}
	default:
		return geom.Point{X: r.Right(), Y: r.Y + r.Height/2}
	}
}
