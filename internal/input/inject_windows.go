//go:build windows

package input

import (
	"fmt"
	"unsafe"
)

const (
	inputKeyboard        = 1
	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002
	keyeventfUnicode     = 0x0004
)

type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// winInput mirrors INPUT for the keyboard case; the padding covers the
// larger MOUSEINPUT member of the union.
type winInput struct {
	Type uint32
	Ki   keybdInput
	_    [8]byte
}

func sendInput(strokes []keyStroke) error {
	if len(strokes) == 0 {
		return nil
	}
	inputs := make([]winInput, len(strokes))
	for n, s := range strokes {
		in := &inputs[n]
		in.Type = inputKeyboard
		if s.unicode {
			in.Ki.WScan = s.char
			in.Ki.DwFlags = keyeventfUnicode
		} else {
			in.Ki.WVk = s.vk
			if extendedKeys[s.vk] {
				in.Ki.DwFlags |= keyeventfExtendedKey
			}
		}
		if s.up {
			in.Ki.DwFlags |= keyeventfKeyUp
		}
	}

	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("SendInput accepted %d of %d events: %v", sent, len(inputs), err)
	}
	return nil
}
