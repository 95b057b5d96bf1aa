//go:build windows

package input

import (
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
	procSendInput           = user32.NewProc("SendInput")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
)

const (
	whKeyboardLL  = 13
	wmQuit        = 0x0012
	wmKeyDown     = 0x0100
	wmSysKeyDown  = 0x0104
	llkhfInjected = 0x00000010

	stopTimeout = 2 * time.Second
)

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

type hookState struct {
	threadID atomic.Uint32
}

// active receives events from the hook callback, which has no user data.
var active atomic.Pointer[Interceptor]

var keyboardCallback = windows.NewCallback(keyboardProc)

// Start installs the low-level keyboard hook on a dedicated OS thread.
func (i *Interceptor) Start() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.running {
		return nil
	}
	if !active.CompareAndSwap(nil, i) {
		return fmt.Errorf("%w: another interceptor is running", ErrHookFailed)
	}

	i.events = make(chan KeyEvent, eventBuffer)
	i.done = make(chan struct{})
	ready := make(chan error, 1)
	go i.hookThread(i.events, ready)

	if err := <-ready; err != nil {
		active.Store(nil)
		return err
	}
	i.running = true
	go i.consume(i.events, i.done)
	return nil
}

// Stop removes the hook and waits for the consumer to drain.
func (i *Interceptor) Stop() error {
	i.mu.Lock()
	if !i.running {
		i.mu.Unlock()
		return nil
	}
	i.running = false
	done := i.done
	i.mu.Unlock()

	procPostThreadMessage.Call(uintptr(i.platform.threadID.Load()), wmQuit, 0, 0)

	select {
	case <-done:
	case <-time.After(stopTimeout):
		return fmt.Errorf("keyboard hook did not stop within %s", stopTimeout)
	}
	active.CompareAndSwap(i, nil)
	return nil
}

func (i *Interceptor) hookThread(events chan KeyEvent, ready chan<- error) {
	// The hook fires on the thread that installed it, inside GetMessage.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hMod, _, _ := procGetModuleHandle.Call(0)
	hook, _, err := procSetWindowsHookEx.Call(whKeyboardLL, keyboardCallback, hMod, 0)
	if hook == 0 {
		close(events)
		ready <- fmt.Errorf("%w: %v", ErrHookFailed, err)
		return
	}
	i.platform.threadID.Store(windows.GetCurrentThreadId())
	ready <- nil
	log.Println("Input: Keyboard hook installed")

	var m msg
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
	}

	procUnhookWindowsHookEx.Call(hook)
	close(events)
	log.Println("Input: Keyboard hook removed")
}

func keyboardProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode == 0 {
		if i := active.Load(); i != nil {
			kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
			i.push(KeyEvent{
				VKCode:   kb.VkCode,
				Down:     wParam == wmKeyDown || wParam == wmSysKeyDown,
				Injected: kb.Flags&llkhfInjected != 0,
			})
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}
