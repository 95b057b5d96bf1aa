package input

import (
	"fmt"
	"unicode/utf16"
)

// keyStroke is one synthesized key transition. A unicode stroke carries a
// UTF-16 unit in char instead of a virtual key.
type keyStroke struct {
	vk      uint16
	char    uint16
	up      bool
	unicode bool
}

// Injector sends keys to the focused application.
type Injector struct {
	suppressor Suppressor
	send       func([]keyStroke) error
}

// NewInjector creates an injector. Every send goes through s first so the
// interceptor does not mistake the pad's own keys for typing.
func NewInjector(s Suppressor) *Injector {
	return &Injector{suppressor: s, send: sendInput}
}

// PressKey taps a single named key.
func (in *Injector) PressKey(name string) error {
	vk, err := VKCode(name)
	if err != nil {
		return err
	}
	return in.emit([]keyStroke{{vk: vk}, {vk: vk, up: true}})
}

// Hotkey presses keys in order and releases them in reverse, e.g.
// Hotkey("win", ".") or Hotkey("shift", "enter").
func (in *Injector) Hotkey(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	vks := make([]uint16, len(keys))
	for n, k := range keys {
		vk, err := VKCode(k)
		if err != nil {
			return err
		}
		vks[n] = vk
	}
	strokes := make([]keyStroke, 0, 2*len(vks))
	for _, vk := range vks {
		strokes = append(strokes, keyStroke{vk: vk})
	}
	for n := len(vks) - 1; n >= 0; n-- {
		strokes = append(strokes, keyStroke{vk: vks[n], up: true})
	}
	return in.emit(strokes)
}

// TypeText types text as unicode characters regardless of keyboard layout.
func (in *Injector) TypeText(text string) error {
	if text == "" {
		return nil
	}
	units := utf16.Encode([]rune(text))
	strokes := make([]keyStroke, 0, 2*len(units))
	for _, u := range units {
		strokes = append(strokes,
			keyStroke{char: u, unicode: true},
			keyStroke{char: u, unicode: true, up: true})
	}
	return in.emit(strokes)
}

func (in *Injector) emit(strokes []keyStroke) error {
	if in.suppressor != nil {
		in.suppressor.Suppress()
	}
	if err := in.send(strokes); err != nil {
		return fmt.Errorf("failed to send %d key events: %w", len(strokes), err)
	}
	return nil
}
