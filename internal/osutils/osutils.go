// Package osutils holds small operating system queries used at startup and
// by the profile watcher.
package osutils

import "errors"

// ErrNoForeground is returned when no window has the focus.
var ErrNoForeground = errors.New("no foreground window")

// App describes the window that has the keyboard focus.
type App struct {
	Title string
	Exe   string
}
