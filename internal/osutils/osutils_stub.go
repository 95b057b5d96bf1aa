//go:build !windows

package osutils

import (
	"fmt"
	"runtime"
)

// IsAdmin is a stub for non-Windows platforms
func IsAdmin() bool {
	return false
}

// ForegroundApp is not available on this platform.
func ForegroundApp() (App, error) {
	return App{}, fmt.Errorf("foreground window lookup not supported on %s", runtime.GOOS)
}
