package input

import (
	"fmt"
	"strings"
)

// Virtual-key codes used by the pad.
const (
	VKBack     = 0x08
	VKTab      = 0x09
	VKReturn   = 0x0D
	VKShift    = 0x10
	VKControl  = 0x11
	VKMenu     = 0x12
	VKCapital  = 0x14
	VKEscape   = 0x1B
	VKSpace    = 0x20
	VKLWin     = 0x5B
	VKVolMute  = 0xAD
	VKVolDown  = 0xAE
	VKVolUp    = 0xAF
	VKNext     = 0xB0
	VKPrev     = 0xB1
	VKPlay     = 0xB3
	VKOemSemi  = 0xBA
	VKOemComma = 0xBC
	VKOemMinus = 0xBD
	VKOemDot   = 0xBE
	VKOemSlash = 0xBF
)

var namedKeys = map[string]uint16{
	"backspace":  VKBack,
	"tab":        VKTab,
	"enter":      VKReturn,
	"shift":      VKShift,
	"ctrl":       VKControl,
	"alt":        VKMenu,
	"capslock":   VKCapital,
	"esc":        VKEscape,
	"space":      VKSpace,
	"pageup":     0x21,
	"pagedown":   0x22,
	"end":        0x23,
	"home":       0x24,
	"left":       0x25,
	"up":         0x26,
	"right":      0x27,
	"down":       0x28,
	"insert":     0x2D,
	"delete":     0x2E,
	"win":        VKLWin,
	"volumemute": VKVolMute,
	"volumedown": VKVolDown,
	"volumeup":   VKVolUp,
	"nexttrack":  VKNext,
	"prevtrack":  VKPrev,
	"playpause":  VKPlay,
	";":          VKOemSemi,
	",":          VKOemComma,
	"-":          VKOemMinus,
	".":          VKOemDot,
	"/":          VKOemSlash,
}

// sideKeys are the left/right variants the hook reports for modifiers.
var sideKeys = map[uint32]string{
	0xA0: "shift", 0xA1: "shift",
	0xA2: "ctrl", 0xA3: "ctrl",
	0xA4: "alt", 0xA5: "alt",
	0x5C: "win",
}

// IsModifier reports whether vk is Shift, Ctrl, Alt or a Windows key,
// either side.
func IsModifier(vk uint32) bool {
	switch {
	case vk >= 0x10 && vk <= 0x12, vk >= 0xA0 && vk <= 0xA5:
		return true
	}
	return vk == 0x5B || vk == 0x5C
}

var keyNames = func() map[uint32]string {
	names := make(map[uint32]string, len(namedKeys)+len(sideKeys))
	for name, vk := range namedKeys {
		names[uint32(vk)] = name
	}
	for vk, name := range sideKeys {
		names[vk] = name
	}
	return names
}()

// extendedKeys need KEYEVENTF_EXTENDEDKEY when synthesized.
var extendedKeys = map[uint16]bool{
	0x21: true, 0x22: true, 0x23: true, 0x24: true,
	0x25: true, 0x26: true, 0x27: true, 0x28: true,
	0x2D: true, 0x2E: true,
	VKLWin: true,
}

// VKCode maps a key name ("a", "7", "enter", "volumeup", "f5") to its
// virtual-key code.
func VKCode(name string) (uint16, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if vk, ok := namedKeys[n]; ok {
		return vk, nil
	}
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= '0' && c <= '9':
			return uint16(c), nil
		case c >= 'a' && c <= 'z':
			return uint16(c - 'a' + 'A'), nil
		}
	}
	var f int
	if _, err := fmt.Sscanf(n, "f%d", &f); err == nil && f >= 1 && f <= 12 && fmt.Sprintf("f%d", f) == n {
		return uint16(0x6F + f), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// KeyName is the inverse of VKCode: it names a virtual-key code as reported
// by the keyboard hook, or returns "" for keys without a name.
func KeyName(vk uint32) string {
	if name, ok := keyNames[vk]; ok {
		return name
	}
	switch {
	case vk >= 'A' && vk <= 'Z':
		return string(rune(vk - 'A' + 'a'))
	case vk >= '0' && vk <= '9':
		return string(rune(vk))
	case vk >= 0x70 && vk <= 0x7B:
		return fmt.Sprintf("f%d", vk-0x6F)
	}
	return ""
}
