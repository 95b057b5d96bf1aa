// Package tray provides system tray functionality using getlantern/systray.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

const noParent = -1

// MenuItem represents a menu item
type MenuItem struct {
	ID        int
	Title     string
	Checkable bool
	Checked   bool
	Parent    int
	Callback  func()
	submenu   bool
	item      *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	mu      sync.Mutex
	items   []*MenuItem
	onReady func()
	onExit  func()
	readyCh chan struct{}
	quitCh  chan struct{}
}

// New creates a new system tray
func New(title, tooltip string) *Tray {
	t := &Tray{
		items:   make([]*MenuItem, 0),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}

	t.onReady = func() {
		systray.SetTitle(title)
		systray.SetTooltip(tooltip)
		systray.SetIcon(getIcon())
		close(t.readyCh)
	}

	t.onExit = func() {
		close(t.quitCh)
	}

	return t
}

// AddMenuItem adds a menu item to the tray
func (t *Tray) AddMenuItem(title string, callback func()) int {
	return t.add(&MenuItem{Title: title, Parent: noParent, Callback: callback})
}

// AddCheckbox adds a menu item with a check mark
func (t *Tray) AddCheckbox(title string, checked bool, callback func()) int {
	return t.add(&MenuItem{Title: title, Checkable: true, Checked: checked, Parent: noParent, Callback: callback})
}

// AddSubMenu adds an item that only opens a submenu
func (t *Tray) AddSubMenu(title string) int {
	return t.add(&MenuItem{Title: title, Parent: noParent, submenu: true})
}

// AddSubMenuItem adds a checkable item below a submenu
func (t *Tray) AddSubMenuItem(parent int, title string, checked bool, callback func()) int {
	return t.add(&MenuItem{Title: title, Checkable: true, Checked: checked, Parent: parent, Callback: callback})
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, nil) // nil indicates separator
}

func (t *Tray) add(mi *MenuItem) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	mi.ID = len(t.items)
	t.items = append(t.items, mi)
	return mi.ID
}

// SetItemChecked sets the checked state of a menu item. It may be called
// before the menu is built.
func (t *Tray) SetItemChecked(id int, checked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return
	}
	mi := t.items[id]
	mi.Checked = checked
	if mi.item == nil {
		return
	}
	if checked {
		mi.item.Check()
	} else {
		mi.item.Uncheck()
	}
}

// Checked reports the stored check state of an item
func (t *Tray) Checked(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return false
	}
	return t.items[id].Checked
}

// Ready is closed once the menu is built
func (t *Tray) Ready() <-chan struct{} {
	return t.readyCh
}

// Run starts the tray event loop (blocks)
func (t *Tray) Run() {
	systray.Run(t.setupMenu, t.onExit)
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	t.mu.Lock()
	for _, menuItem := range t.items {
		if menuItem == nil {
			// Separator
			systray.AddSeparator()
			continue
		}

		switch {
		case menuItem.Parent != noParent:
			parent := t.items[menuItem.Parent]
			menuItem.item = parent.item.AddSubMenuItem(menuItem.Title, "")
			if menuItem.Checked {
				menuItem.item.Check()
			}
		case menuItem.Checkable:
			menuItem.item = systray.AddMenuItemCheckbox(menuItem.Title, "", menuItem.Checked)
		default:
			menuItem.item = systray.AddMenuItem(menuItem.Title, "")
		}

		// Handle clicks in goroutine
		if menuItem.Callback != nil {
			go func(mi *MenuItem) {
				for {
					select {
					case <-mi.item.ClickedCh:
						mi.Callback()
					case <-t.quitCh:
						return
					}
				}
			}(menuItem)
		}
	}
	t.mu.Unlock()

	t.onReady()
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}
