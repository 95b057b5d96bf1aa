//go:build windows

package osutils

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procGetWindowTextW = user32.NewProc("GetWindowTextW")
)

// IsAdmin checks if the current process has administrative privileges
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	var sid *windows.SID
	err = windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}

	return member
}

// ForegroundApp returns the title and executable name of the focused
// window.
func ForegroundApp() (App, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return App{}, ErrNoForeground
	}

	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	app := App{Title: windows.UTF16ToString(buf[:n])}

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return app, fmt.Errorf("failed to get window process: %w", err)
	}
	proc, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		// Elevated processes cannot be opened from a normal one.
		return app, nil
	}
	defer windows.CloseHandle(proc)

	path := make([]uint16, windows.MAX_PATH)
	size := uint32(len(path))
	if err := windows.QueryFullProcessImageName(proc, 0, &path[0], &size); err != nil {
		return app, nil
	}
	app.Exe = filepath.Base(windows.UTF16ToString(path[:size]))
	return app, nil
}
