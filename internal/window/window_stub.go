//go:build !windows

package window

import (
	"floatpad/internal/dock"
	"floatpad/internal/geom"
)

// Window is unavailable on this platform.
type Window struct{}

// New reports ErrUnsupported.
func New(Loop, Options) (*Window, error) { return nil, ErrUnsupported }

func (w *Window) SetHandler(Handler)            {}
func (w *Window) Close()                        {}
func (w *Window) Done() <-chan struct{}         { return nil }
func (w *Window) Geometry() (geom.Rect, error)  { return geom.Rect{}, ErrUnsupported }
func (w *Window) Bounds() (geom.Rect, error)    { return geom.Rect{}, ErrUnsupported }
func (w *Window) SetGeometry(geom.Rect)         {}
func (w *Window) Pointer() (geom.Point, error)  { return geom.Point{}, ErrUnsupported }
func (w *Window) Monitor() geom.Monitor         { return geom.Monitor{} }
func (w *Window) ShowView(dock.View, dock.Edge) {}
func (w *Window) Invalidate()                   {}
func (w *Window) Show()                         {}
func (w *Window) Hide()                         {}
func (w *Window) Visible() bool                 { return false }
func (w *Window) SetGlass(bool)                 {}
