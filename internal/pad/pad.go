// Package pad describes the key layouts of the full panel and maps pointer
// positions to keys.
package pad

import "floatpad/internal/geom"

// Panel chrome, in pixels.
const (
	TitleHeight = 32
	Padding     = 8
	Gap         = 2
	GripSize    = 14
)

// ActionKind says what a key does when tapped.
type ActionKind int

const (
	// Press taps the virtual keys in Keys
	Press ActionKind = iota
	// Text types Text verbatim
	Text
	// Letter types Text, upper-cased while shift or caps is on
	Letter
	// Hotkey presses Keys as a chord
	Hotkey
	Shift
	Caps
	// Cycle switches to the next layout
	Cycle
	// Emoji opens the OS emoji panel
	Emoji
	// Dock folds the panel to its tab
	Dock
)

// Action is what a key sends.
type Action struct {
	Kind ActionKind
	Keys []string
	Text string
}

// Key is one button of a layout.
type Key struct {
	Label string
	Row   int
	Col   int
	Span  int

	Action Action
	// Hold replaces Action when the key is held past the long-press delay.
	Hold *Action
	// Repeat re-sends Action while the key is held.
	Repeat bool
}

// Layout is a grid of keys.
type Layout struct {
	Name    string
	Columns int
	Rows    int
	Keys    []Key

	// ScrollRow is the row where the wheel changes volume, or -1.
	ScrollRow int
}

// Region is the part of the panel under the pointer.
type Region int

const (
	RegionNone Region = iota
	RegionTitle
	RegionButton
	RegionGrip
	RegionKey
)

// Hit is the result of a hit test.
type Hit struct {
	Region Region
	Key    Key
	Rect   geom.Rect
}

// Cell is a key and the rect it occupies.
type Cell struct {
	Key  Key
	Rect geom.Rect
}

// TitleCells places the title buttons in a client area of the given size.
func TitleCells(client geom.Rect) []Cell {
	cells := make([]Cell, len(TitleButtons))
	x := client.Right()
	for i, b := range TitleButtons {
		x -= TitleHeight
		cells[i] = Cell{Key: b, Rect: geom.Rect{X: x, Y: client.Y, Width: TitleHeight, Height: TitleHeight}}
	}
	return cells
}

// Content returns the key area below the title strip and above the grip.
func Content(client geom.Rect) geom.Rect {
	return geom.Rect{
		X:      client.X + Padding,
		Y:      client.Y + TitleHeight + Padding/2,
		Width:  client.Width - 2*Padding,
		Height: client.Height - TitleHeight - Padding/2 - GripSize,
	}
}

// Cells lays the keys of l out in client.
func Cells(l Layout, client geom.Rect) []Cell {
	area := Content(client)
	if l.Columns < 1 || l.Rows < 1 || area.Width <= 0 || area.Height <= 0 {
		return nil
	}
	cw := (area.Width - (l.Columns-1)*Gap) / l.Columns
	rh := (area.Height - (l.Rows-1)*Gap) / l.Rows

	cells := make([]Cell, 0, len(l.Keys))
	for _, key := range l.Keys {
		span := key.Span
		if span < 1 {
			span = 1
		}
		cells = append(cells, Cell{
			Key: key,
			Rect: geom.Rect{
				X:      area.X + key.Col*(cw+Gap),
				Y:      area.Y + key.Row*(rh+Gap),
				Width:  span*cw + (span-1)*Gap,
				Height: rh,
			},
		})
	}
	return cells
}

// Grip returns the resize handle in the bottom-right corner.
func Grip(client geom.Rect) geom.Rect {
	return geom.Rect{
		X:      client.Right() - GripSize,
		Y:      client.Bottom() - GripSize,
		Width:  GripSize,
		Height: GripSize,
	}
}

// HitTest finds what lies under p. Rect edges are exclusive here so
// neighbouring keys never both match.
func HitTest(l Layout, client geom.Rect, p geom.Point) Hit {
	for _, c := range TitleCells(client) {
		if within(c.Rect, p) {
			return Hit{Region: RegionButton, Key: c.Key, Rect: c.Rect}
		}
	}
	if p.Y >= client.Y && p.Y < client.Y+TitleHeight && p.X >= client.X && p.X < client.Right() {
		return Hit{Region: RegionTitle}
	}
	if g := Grip(client); within(g, p) {
		return Hit{Region: RegionGrip, Rect: g}
	}
	for _, c := range Cells(l, client) {
		if within(c.Rect, p) {
			return Hit{Region: RegionKey, Key: c.Key, Rect: c.Rect}
		}
	}
	return Hit{Region: RegionNone}
}

func within(r geom.Rect, p geom.Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}
