// Package window hosts the borderless, topmost, non-activating panel window
// and routes pointer input to a Handler on the UI thread.
package window

import (
	"errors"

	"floatpad/internal/geom"
	"floatpad/internal/pad"
)

// ErrUnsupported is returned on platforms without a native window.
var ErrUnsupported = errors.New("window: unsupported platform")

// Colors of the dark theme, as 0xRRGGBB.
const (
	ColorBackground = 0x1e1e1e
	ColorTitle      = 0x252526
	ColorKey        = 0x252526
	ColorKeyHover   = 0x37373d
	ColorAccent     = 0x0078d4
	ColorText       = 0xffffff
)

// Minimum size of the full panel while resizing.
const (
	MinWidth  = 220
	MinHeight = 350
)

// Loop is the UI queue drained by the window thread.
type Loop interface {
	Post(fn func()) bool
	Drain()
	SetWaker(fn func())
}

// Handler receives input from the window. Every method runs on the UI
// thread.
type Handler interface {
	CurrentLayout() pad.Layout
	Held() (pad.Key, bool)
	Shift() bool
	Caps() bool

	KeyDown(k pad.Key)
	KeyUp()
	Fire(a pad.Action)
	Scroll(k pad.Key, delta int)
	MiddleClick()

	TabClicked()
	DragStarted()
	DragEnded(start geom.Rect)
	ResizeEnded()

	ToggleGlass()
	ContextMenu() []MenuItem
}

// MenuItem is one entry of the right-click menu. An item with no Label is a
// separator; one with Items opens a submenu.
type MenuItem struct {
	Label   string
	Checked bool
	Items   []MenuItem
	Do      func()
}

// Options configure a new window.
type Options struct {
	Title    string
	Geometry geom.Rect
	Glass    bool
}

// Label returns the text drawn on a key, honouring shift and caps for
// letters.
func Label(k pad.Key, upper bool) string {
	if upper && k.Action.Kind == pad.Letter {
		return string(rune(k.Label[0] - 'a' + 'A'))
	}
	return k.Label
}
