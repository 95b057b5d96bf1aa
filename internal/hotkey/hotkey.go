// Package hotkey matches global key chords such as "Ctrl+Alt+Space".
package hotkey

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"floatpad/internal/input"
)

// Manager handles hotkey registration and matching. Key state is fed from
// the global keyboard hook.
type Manager struct {
	mu           sync.RWMutex
	hotkeys      []*registeredHotkey
	currentState map[string]bool // map of current keys pressed
}

type registeredHotkey struct {
	parts    []string // e.g., ["CTRL", "ALT", "SPACE"]
	original string
	callback func()
}

// NewManager creates a new hotkey manager
func NewManager() *Manager {
	return &Manager{
		currentState: make(map[string]bool),
	}
}

// Register registers a hotkey string (e.g. "Ctrl+Alt+Space") and a callback.
func (m *Manager) Register(hotkeyStr string, callback func()) (int, error) {
	if hotkeyStr == "" {
		return 0, nil
	}

	parts := strings.Split(strings.ToUpper(hotkeyStr), "+")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return 0, fmt.Errorf("invalid hotkey %q", hotkeyStr)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.hotkeys = append(m.hotkeys, &registeredHotkey{
		parts:    parts,
		original: hotkeyStr,
		callback: callback,
	})

	return len(m.hotkeys) - 1, nil
}

// Clear removes all registered hotkeys
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotkeys = nil
}

// HandleVK feeds one key transition by virtual-key code. It reports whether
// the press completed a registered chord.
func (m *Manager) HandleVK(vk uint32, isDown bool) bool {
	name := input.KeyName(vk)
	if name == "" {
		return false
	}
	return m.UpdateState(name, isDown)
}

// UpdateState updates the internal state of a key and checks for matches.
// Auto-repeat of a held key does not fire again.
func (m *Manager) UpdateState(key string, isDown bool) bool {
	m.mu.Lock()
	key = strings.ToUpper(key)
	repeat := isDown && m.currentState[key]
	if isDown {
		m.currentState[key] = true
	} else {
		delete(m.currentState, key)
	}
	m.mu.Unlock()

	if !isDown || repeat {
		return false
	}
	return m.checkMatches(key)
}

func (m *Manager) checkMatches(pressed string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := false
	for _, hk := range m.hotkeys {
		match := true
		involved := false
		// All parts of the hotkey must be in currentState
		for _, part := range hk.parts {
			if !m.currentState[part] {
				match = false
				break
			}
			if part == pressed {
				involved = true
			}
		}

		if match && involved {
			log.Printf("Hotkey triggered: %s", hk.original)
			matched = true
			go hk.callback()
		}
	}
	return matched
}
