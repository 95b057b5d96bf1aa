//go:build windows

package window

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	"floatpad/internal/dock"
	"floatpad/internal/geom"
	"floatpad/internal/pad"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	dwmapi   = windows.NewLazySystemDLL("dwmapi.dll")

	procRegisterClassEx            = user32.NewProc("RegisterClassExW")
	procCreateWindowEx             = user32.NewProc("CreateWindowExW")
	procDestroyWindow              = user32.NewProc("DestroyWindow")
	procDefWindowProc              = user32.NewProc("DefWindowProcW")
	procGetMessage                 = user32.NewProc("GetMessageW")
	procTranslateMessage           = user32.NewProc("TranslateMessage")
	procDispatchMessage            = user32.NewProc("DispatchMessageW")
	procPostMessage                = user32.NewProc("PostMessageW")
	procPostQuitMessage            = user32.NewProc("PostQuitMessage")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procSetWindowPos               = user32.NewProc("SetWindowPos")
	procGetWindowRect              = user32.NewProc("GetWindowRect")
	procGetClientRect              = user32.NewProc("GetClientRect")
	procGetCursorPos               = user32.NewProc("GetCursorPos")
	procSetCapture                 = user32.NewProc("SetCapture")
	procReleaseCapture             = user32.NewProc("ReleaseCapture")
	procTrackMouseEvent            = user32.NewProc("TrackMouseEvent")
	procInvalidateRect             = user32.NewProc("InvalidateRect")
	procBeginPaint                 = user32.NewProc("BeginPaint")
	procEndPaint                   = user32.NewProc("EndPaint")
	procFillRect                   = user32.NewProc("FillRect")
	procDrawText                   = user32.NewProc("DrawTextW")
	procLoadCursor                 = user32.NewProc("LoadCursorW")
	procMonitorFromWindow          = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfo             = user32.NewProc("GetMonitorInfoW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procSetWindowCompositionAttrib = user32.NewProc("SetWindowCompositionAttribute")
	procSetProcessDPIAware         = user32.NewProc("SetProcessDPIAware")
	procSetForegroundWindow        = user32.NewProc("SetForegroundWindow")
	procCreatePopupMenu            = user32.NewProc("CreatePopupMenu")
	procAppendMenu                 = user32.NewProc("AppendMenuW")
	procTrackPopupMenu             = user32.NewProc("TrackPopupMenu")
	procDestroyMenu                = user32.NewProc("DestroyMenu")
	procCreateSolidBrush           = gdi32.NewProc("CreateSolidBrush")
	procCreateFont                 = gdi32.NewProc("CreateFontW")
	procSelectObject               = gdi32.NewProc("SelectObject")
	procDeleteObject               = gdi32.NewProc("DeleteObject")
	procSetTextColor               = gdi32.NewProc("SetTextColor")
	procSetBkMode                  = gdi32.NewProc("SetBkMode")
	procGetModuleHandle            = kernel32.NewProc("GetModuleHandleW")
	procDwmSetWindowAttribute      = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	className = "FloatPadWindow"

	wsPopup          = 0x80000000
	wsExTopmost      = 0x00000008
	wsExToolWindow   = 0x00000080
	wsExLayered      = 0x00080000
	wsExNoActivate   = 0x08000000
	swHide           = 0
	swShowNoActivate = 4
	swpNoActivate    = 0x0010
	hwndTopmost      = ^uintptr(0) // (HWND)-1
	lwaAlpha         = 0x2
	panelAlpha       = 242
	idcArrow         = 32512
	monitorNearest   = 2

	wmDestroy         = 0x0002
	wmPaint           = 0x000F
	wmClose           = 0x0010
	wmEraseBkgnd      = 0x0014
	wmMouseActivate   = 0x0021
	wmKeyDown         = 0x0100
	wmMouseMove       = 0x0200
	wmLButtonDown     = 0x0201
	wmLButtonUp       = 0x0202
	wmRButtonUp       = 0x0205
	wmMButtonUp       = 0x0208
	wmMouseWheel      = 0x020A
	wmCaptureChanged  = 0x0215
	wmMouseLeave      = 0x02A3
	wmApp             = 0x8000
	maNoActivate      = 3
	tmeLeave          = 0x2
	vkF5              = 0x74
	transparentBkMode = 1

	dtCenter     = 0x1
	dtVCenter    = 0x4
	dtSingleLine = 0x20
	dtLeft       = 0x0

	mfString       = 0x0
	mfChecked      = 0x8
	mfPopup        = 0x10
	mfSeparator    = 0x800
	tpmReturnCmd   = 0x0100
	tpmRightButton = 0x0002

	dwmwaWindowCornerPreference = 33
	dwmwcpRound                 = 2
	wcaAccentPolicy             = 19
	accentDisabled              = 0
	accentAcrylic               = 3
	acrylicTint                 = 0xF21e1e1e // AABBGGRR
)

type point struct{ X, Y int32 }

type rect struct{ Left, Top, Right, Bottom int32 }

func (r rect) bounds() geom.Rect {
	return geom.Rect{X: int(r.Left), Y: int(r.Top), Width: int(r.Right - r.Left), Height: int(r.Bottom - r.Top)}
}

func toRect(r geom.Rect) rect {
	return rect{int32(r.X), int32(r.Y), int32(r.Right()), int32(r.Bottom())}
}

type msg struct {
	Hwnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type paintStruct struct {
	Hdc         windows.Handle
	Erase       int32
	RcPaint     rect
	Restore     int32
	IncUpdate   int32
	RgbReserved [32]byte
}

type monitorInfo struct {
	Size    uint32
	Monitor rect
	Work    rect
	Flags   uint32
}

type trackMouseEvent struct {
	Size      uint32
	Flags     uint32
	Hwnd      windows.Handle
	HoverTime uint32
}

type accentPolicy struct {
	State         uint32
	Flags         uint32
	GradientColor uint32
	AnimationID   uint32
}

type compositionAttribData struct {
	Attrib uintptr
	Data   unsafe.Pointer
	Size   uintptr
}

// Window is the panel window. Geometry, Pointer, Monitor and Visible may be
// called from any goroutine; everything else runs on the window thread.
type Window struct {
	hwnd    windows.Handle
	loop    Loop
	handler Handler
	title   string

	glass   bool
	view    dock.View
	edge    dock.Edge
	visible atomic.Bool

	gesture  Gesture
	hover    int
	tracking bool
	font     uintptr
	menu     map[uintptr]func()

	done chan struct{}
	once sync.Once
}

// active is the window served by wndProc, which has no user data.
var active atomic.Pointer[Window]

var wndProcCallback = windows.NewCallback(wndProc)

// New creates the window on its own OS thread. The window starts hidden and
// drains loop whenever work is posted.
func New(loop Loop, opts Options) (*Window, error) {
	w := &Window{
		loop:  loop,
		title: opts.Title,
		glass: opts.Glass,
		hover: -1,
		done:  make(chan struct{}),
	}
	if !active.CompareAndSwap(nil, w) {
		return nil, fmt.Errorf("window: already created")
	}

	ready := make(chan error, 1)
	go w.thread(opts.Geometry, ready)
	if err := <-ready; err != nil {
		active.Store(nil)
		return nil, err
	}
	loop.SetWaker(func() { procPostMessage.Call(uintptr(w.hwnd), wmApp, 0, 0) })
	return w, nil
}

func (w *Window) thread(r geom.Rect, ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.done)

	procSetProcessDPIAware.Call()
	hInst, _, _ := procGetModuleHandle.Call(0)
	cursor, _, _ := procLoadCursor.Call(0, idcArrow)
	name, _ := windows.UTF16PtrFromString(className)
	title, _ := windows.UTF16PtrFromString(w.title)

	wc := wndClassEx{
		WndProc:   wndProcCallback,
		Instance:  windows.Handle(hInst),
		Cursor:    windows.Handle(cursor),
		ClassName: name,
	}
	wc.Size = uint32(unsafe.Sizeof(wc))
	if atom, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		ready <- fmt.Errorf("window: register class: %v", err)
		return
	}

	hwnd, _, err := procCreateWindowEx.Call(
		wsExTopmost|wsExNoActivate|wsExToolWindow|wsExLayered,
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(title)),
		wsPopup,
		uintptr(r.X), uintptr(r.Y), uintptr(r.Width), uintptr(r.Height),
		0, 0, hInst, 0,
	)
	if hwnd == 0 {
		ready <- fmt.Errorf("window: create: %v", err)
		return
	}
	w.hwnd = windows.Handle(hwnd)
	procSetLayeredWindowAttributes.Call(hwnd, 0, panelAlpha, lwaAlpha)

	face, _ := windows.UTF16PtrFromString("Segoe UI")
	height := int32(-15)
	w.font, _, _ = procCreateFont.Call(uintptr(height), 0, 0, 0, 400, 0, 0, 0, 1, 0, 0, 5, 0, uintptr(unsafe.Pointer(face)))
	defer procDeleteObject.Call(w.font)

	w.roundCorners()
	w.applyGlass()
	ready <- nil
	log.Printf("Window: Created %dx%d at %d,%d", r.Width, r.Height, r.X, r.Y)

	var m msg
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
	active.CompareAndSwap(w, nil)
	log.Printf("Window: Message loop stopped")
}

// SetHandler routes input to h. It is applied on the window thread.
func (w *Window) SetHandler(h Handler) {
	w.loop.Post(func() { w.handler = h })
}

// Close destroys the window and waits for its thread to finish.
func (w *Window) Close() {
	w.once.Do(func() {
		procPostMessage.Call(uintptr(w.hwnd), wmClose, 0, 0)
		<-w.done
	})
}

// Done is closed once the window thread exits.
func (w *Window) Done() <-chan struct{} { return w.done }

// Geometry returns the window rect in screen coordinates.
func (w *Window) Geometry() (geom.Rect, error) {
	var r rect
	if ok, _, err := procGetWindowRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r))); ok == 0 {
		return geom.Rect{}, fmt.Errorf("window: get rect: %v", err)
	}
	return r.bounds(), nil
}

// Bounds is Geometry for the idle poller.
func (w *Window) Bounds() (geom.Rect, error) { return w.Geometry() }

// SetGeometry moves and resizes the window, keeping it topmost.
func (w *Window) SetGeometry(r geom.Rect) {
	procSetWindowPos.Call(uintptr(w.hwnd), hwndTopmost,
		uintptr(r.X), uintptr(r.Y), uintptr(r.Width), uintptr(r.Height), swpNoActivate)
}

// Pointer returns the cursor position in screen coordinates.
func (w *Window) Pointer() (geom.Point, error) {
	var p point
	if ok, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p))); ok == 0 {
		return geom.Point{}, fmt.Errorf("window: cursor: %v", err)
	}
	return geom.Point{X: int(p.X), Y: int(p.Y)}, nil
}

// Monitor returns the bounds of the monitor holding the window.
func (w *Window) Monitor() geom.Monitor {
	mon, _, _ := procMonitorFromWindow.Call(uintptr(w.hwnd), monitorNearest)
	mi := monitorInfo{}
	mi.Size = uint32(unsafe.Sizeof(mi))
	if ok, _, _ := procGetMonitorInfo.Call(mon, uintptr(unsafe.Pointer(&mi))); ok == 0 {
		return geom.Monitor{Right: 1920, Bottom: 1080}
	}
	m := mi.Monitor
	return geom.Monitor{Left: int(m.Left), Top: int(m.Top), Right: int(m.Right), Bottom: int(m.Bottom)}
}

// ShowView switches between the tab and the full panel.
func (w *Window) ShowView(v dock.View, edge dock.Edge) {
	w.view, w.edge = v, edge
	w.hover = -1
	w.Invalidate()
}

// Invalidate schedules a repaint.
func (w *Window) Invalidate() {
	procInvalidateRect.Call(uintptr(w.hwnd), 0, 0)
}

// Show shows the window without taking focus.
func (w *Window) Show() {
	procShowWindow.Call(uintptr(w.hwnd), swShowNoActivate)
	w.visible.Store(true)
}

// Hide hides the window to the tray.
func (w *Window) Hide() {
	procShowWindow.Call(uintptr(w.hwnd), swHide)
	w.visible.Store(false)
}

// Visible reports whether the window is shown.
func (w *Window) Visible() bool { return w.visible.Load() }

// SetGlass switches between the acrylic backdrop and a solid one.
func (w *Window) SetGlass(on bool) {
	if w.glass == on {
		return
	}
	w.glass = on
	w.applyGlass()
	w.Invalidate()
}

// roundCorners asks DWM for rounded corners. Older systems reject it.
func (w *Window) roundCorners() {
	pref := uint32(dwmwcpRound)
	procDwmSetWindowAttribute.Call(uintptr(w.hwnd), dwmwaWindowCornerPreference, uintptr(unsafe.Pointer(&pref)), 4)
}

func (w *Window) applyGlass() {
	policy := accentPolicy{State: accentDisabled}
	if w.glass {
		policy = accentPolicy{State: accentAcrylic, Flags: 2, GradientColor: acrylicTint}
	}
	data := compositionAttribData{
		Attrib: wcaAccentPolicy,
		Data:   unsafe.Pointer(&policy),
		Size:   unsafe.Sizeof(policy),
	}
	if ok, _, err := procSetWindowCompositionAttrib.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&data))); ok == 0 {
		log.Printf("Window: Backdrop not applied: %v", err)
	}
}

func wndProc(hwnd windows.Handle, message uint32, wParam, lParam uintptr) uintptr {
	w := active.Load()
	if w == nil || w.hwnd != hwnd {
		ret, _, _ := procDefWindowProc.Call(uintptr(hwnd), uintptr(message), wParam, lParam)
		return ret
	}

	switch message {
	case wmApp:
		w.loop.Drain()
		return 0
	case wmMouseActivate:
		return maNoActivate
	case wmEraseBkgnd:
		return 1
	case wmPaint:
		w.paint()
		return 0
	case wmLButtonDown:
		w.onButtonDown(clientPoint(lParam))
		return 0
	case wmMouseMove:
		w.onMouseMove(clientPoint(lParam))
		return 0
	case wmLButtonUp:
		procReleaseCapture.Call()
		w.onButtonUp()
		return 0
	case wmCaptureChanged:
		if w.gesture.Mode() != ModeIdle {
			w.onButtonUp()
		}
		return 0
	case wmMouseLeave:
		w.tracking = false
		if w.hover >= 0 {
			w.hover = -1
			w.Invalidate()
		}
		return 0
	case wmMouseWheel:
		w.onWheel(int(int16(wParam>>16)), screenPoint(lParam))
		return 0
	case wmMButtonUp:
		if w.handler != nil && w.view == dock.ViewPanel {
			w.handler.MiddleClick()
		}
		return 0
	case wmRButtonUp:
		w.showMenu()
		return 0
	case wmKeyDown:
		if wParam == vkF5 && w.handler != nil {
			w.handler.ToggleGlass()
		}
		return 0
	case wmClose:
		procDestroyWindow.Call(uintptr(hwnd))
		return 0
	case wmDestroy:
		procPostQuitMessage.Call(0)
		return 0
	}
	ret, _, _ := procDefWindowProc.Call(uintptr(hwnd), uintptr(message), wParam, lParam)
	return ret
}

func clientPoint(lParam uintptr) geom.Point {
	return geom.Point{X: int(int16(lParam)), Y: int(int16(lParam >> 16))}
}

func screenPoint(lParam uintptr) geom.Point { return clientPoint(lParam) }

func (w *Window) client() geom.Rect {
	var r rect
	procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	return r.bounds()
}

func (w *Window) onButtonDown(p geom.Point) {
	if w.handler == nil {
		return
	}
	cur, err := w.Geometry()
	if err != nil {
		return
	}
	screen, err := w.Pointer()
	if err != nil {
		return
	}

	docked := w.view == dock.ViewTab
	var hit pad.Hit
	if !docked {
		hit = pad.HitTest(w.handler.CurrentLayout(), w.client(), p)
		if hit.Region == pad.RegionButton {
			w.handler.Fire(hit.Key.Action)
			return
		}
	}

	switch w.gesture.Begin(docked, hit, screen, cur) {
	case ModeIdle:
		return
	case ModeKey:
		w.handler.KeyDown(hit.Key)
	default:
		w.handler.DragStarted()
	}
	procSetCapture.Call(uintptr(w.hwnd))
}

func (w *Window) onMouseMove(p geom.Point) {
	if w.gesture.Mode() != ModeIdle {
		screen, err := w.Pointer()
		if err != nil {
			return
		}
		if r, ok := w.gesture.Update(screen); ok {
			w.SetGeometry(r)
			if w.gesture.Mode() == ModeResize {
				w.Invalidate()
			}
		}
		return
	}

	if !w.tracking {
		tme := trackMouseEvent{Flags: tmeLeave, Hwnd: w.hwnd}
		tme.Size = uint32(unsafe.Sizeof(tme))
		procTrackMouseEvent.Call(uintptr(unsafe.Pointer(&tme)))
		w.tracking = true
	}
	if w.handler == nil || w.view != dock.ViewPanel {
		return
	}
	hover := -1
	layout := w.handler.CurrentLayout()
	if hit := pad.HitTest(layout, w.client(), p); hit.Region == pad.RegionKey {
		for i, k := range layout.Keys {
			if k.Row == hit.Key.Row && k.Col == hit.Key.Col {
				hover = i
				break
			}
		}
	}
	if hover != w.hover {
		w.hover = hover
		w.Invalidate()
	}
}

func (w *Window) onButtonUp() {
	start := w.gesture.Start()
	mode, moved := w.gesture.End()
	if w.handler == nil {
		return
	}
	switch mode {
	case ModeKey:
		w.handler.KeyUp()
	case ModeTab:
		if moved {
			w.handler.DragEnded(start)
		} else {
			w.handler.TabClicked()
		}
	case ModeMove:
		w.handler.DragEnded(start)
	case ModeResize:
		w.handler.ResizeEnded()
	}
}

func (w *Window) onWheel(delta int, screen geom.Point) {
	if w.handler == nil || w.view != dock.ViewPanel {
		return
	}
	cur, err := w.Geometry()
	if err != nil {
		return
	}
	p := geom.Point{X: screen.X - cur.X, Y: screen.Y - cur.Y}
	if hit := pad.HitTest(w.handler.CurrentLayout(), w.client(), p); hit.Region == pad.RegionKey {
		w.handler.Scroll(hit.Key, delta)
	}
}

func (w *Window) showMenu() {
	if w.handler == nil {
		return
	}
	items := w.handler.ContextMenu()
	if len(items) == 0 {
		return
	}
	w.menu = make(map[uintptr]func())
	hMenu := w.buildMenu(items)
	defer procDestroyMenu.Call(hMenu)

	p, err := w.Pointer()
	if err != nil {
		return
	}
	procSetForegroundWindow.Call(uintptr(w.hwnd))
	cmd, _, _ := procTrackPopupMenu.Call(hMenu, tpmReturnCmd|tpmRightButton,
		uintptr(p.X), uintptr(p.Y), 0, uintptr(w.hwnd), 0)
	if fn := w.menu[cmd]; fn != nil {
		fn()
	}
	w.menu = nil
}

func (w *Window) buildMenu(items []MenuItem) uintptr {
	hMenu, _, _ := procCreatePopupMenu.Call()
	for _, it := range items {
		if it.Label == "" {
			procAppendMenu.Call(hMenu, mfSeparator, 0, 0)
			continue
		}
		label, _ := windows.UTF16PtrFromString(it.Label)
		if len(it.Items) > 0 {
			sub := w.buildMenu(it.Items)
			procAppendMenu.Call(hMenu, mfPopup, sub, uintptr(unsafe.Pointer(label)))
			continue
		}
		id := uintptr(len(w.menu) + 1)
		w.menu[id] = it.Do
		flags := uintptr(mfString)
		if it.Checked {
			flags |= mfChecked
		}
		procAppendMenu.Call(hMenu, flags, id, uintptr(unsafe.Pointer(label)))
	}
	return hMenu
}

// colorRef converts 0xRRGGBB to a GDI COLORREF.
func colorRef(c uint32) uintptr {
	return uintptr((c&0xff)<<16 | c&0xff00 | (c>>16)&0xff)
}

func (w *Window) paint() {
	var ps paintStruct
	hdc, _, _ := procBeginPaint.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&ps)))
	defer procEndPaint.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&ps)))

	client := w.client()
	procSetBkMode.Call(hdc, transparentBkMode)
	procSetTextColor.Call(hdc, colorRef(ColorText))
	old, _, _ := procSelectObject.Call(hdc, w.font)
	defer procSelectObject.Call(hdc, old)

	if w.view == dock.ViewTab || w.handler == nil {
		fill(hdc, client, ColorAccent)
		if w.edge == dock.EdgeTop {
			drawText(hdc, "⌨", client, dtCenter|dtVCenter|dtSingleLine)
		}
		return
	}

	bg := uint32(ColorBackground)
	if w.glass {
		bg = 0x000000
	}
	fill(hdc, client, bg)

	title := geom.Rect{X: client.X, Y: client.Y, Width: client.Width, Height: pad.TitleHeight}
	fill(hdc, title, ColorTitle)
	label := title
	label.X += pad.Padding
	drawText(hdc, w.title, label, dtLeft|dtVCenter|dtSingleLine)
	for _, c := range pad.TitleCells(client) {
		drawText(hdc, c.Key.Label, c.Rect, dtCenter|dtVCenter|dtSingleLine)
	}

	held, isHeld := w.handler.Held()
	upper := w.handler.Shift() || w.handler.Caps()
	for i, c := range pad.Cells(w.handler.CurrentLayout(), client) {
		color := uint32(ColorKey)
		switch {
		case isHeld && held.Row == c.Key.Row && held.Col == c.Key.Col:
			color = ColorAccent
		case c.Key.Action.Kind == pad.Shift && w.handler.Shift(),
			c.Key.Action.Kind == pad.Caps && w.handler.Caps():
			color = ColorAccent
		case i == w.hover:
			color = ColorKeyHover
		}
		fill(hdc, c.Rect, color)
		drawText(hdc, Label(c.Key, upper), c.Rect, dtCenter|dtVCenter|dtSingleLine)
	}

	fill(hdc, pad.Grip(client), ColorKeyHover)
}

func fill(hdc uintptr, r geom.Rect, color uint32) {
	brush, _, _ := procCreateSolidBrush.Call(colorRef(color))
	defer procDeleteObject.Call(brush)
	rc := toRect(r)
	procFillRect.Call(hdc, uintptr(unsafe.Pointer(&rc)), brush)
}

func drawText(hdc uintptr, s string, r geom.Rect, format uintptr) {
	text, err := windows.UTF16FromString(s)
	if err != nil || len(text) < 2 {
		return
	}
	rc := toRect(r)
	procDrawText.Call(hdc, uintptr(unsafe.Pointer(&text[0])), uintptr(len(text)-1), uintptr(unsafe.Pointer(&rc)), format)
}
