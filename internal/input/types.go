// Package input watches physical typing and synthesizes the keys the pad
// sends to the focused application.
package input

import "errors"

var (
	// ErrHookFailed is returned when the keyboard hook cannot be installed.
	ErrHookFailed = errors.New("keyboard hook registration failed")

	// ErrUnsupported is returned on platforms without global keyboard access.
	ErrUnsupported = errors.New("keyboard access not supported on this platform")

	// ErrUnknownKey is returned for key names the injector cannot map.
	ErrUnknownKey = errors.New("unknown key")
)

// KeyEvent is one keyboard transition seen by the global hook.
type KeyEvent struct {
	VKCode   uint32
	Down     bool
	Injected bool
}

// Target is the panel as seen from the hook consumer.
type Target interface {
	Visible() bool
	Undocked() bool
	RequestDock(animated bool)
}

// Poster runs fn on the UI loop.
type Poster interface {
	Post(fn func()) bool
}

// Suppressor silences the on-type trigger around synthesized input.
type Suppressor interface {
	Suppress()
}

// KeyListener sees every physical key event before the dock decision. It
// returns true when it consumed the event, e.g. a matched hotkey.
type KeyListener func(ev KeyEvent) bool
