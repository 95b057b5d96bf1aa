// Package autostart registers the panel to start when the user logs in.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// AppName is the login entry name.
const AppName = "FloatPad"

// ErrUnsupported is returned where no login entry can be written.
var ErrUnsupported = errors.New("autostart not supported on this platform")

// Command builds the command line stored in the login entry. Arguments with
// spaces are quoted; the executable always is.
func Command(execPath string, args ...string) string {
	parts := []string{`"` + execPath + `"`}
	for _, a := range args {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// IsEnabled reports whether a login entry exists.
func IsEnabled() bool {
	_, ok := current()
	return ok
}

// Sync makes the login entry match want. An existing entry pointing at a
// different executable is rewritten.
func Sync(want bool) error {
	if !want {
		if !IsEnabled() {
			return nil
		}
		return remove()
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	cmd := Command(execPath)
	if cur, ok := current(); ok && cur == cmd {
		return nil
	}
	return write(cmd)
}
