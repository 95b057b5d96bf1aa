// Package config provides preference storage for the floating panel.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

const (
	// DefaultGeometry is the undocked panel frame used on first start and
	// whenever the saved one is unusable.
	DefaultGeometry = "300x460+500+200"

	// DefaultTimeout is the idle auto-dock timeout in seconds.
	DefaultTimeout = 5

	// NeverTimeout is written by the "Never Auto-Hide" menu entry.
	NeverTimeout = 99999

	// DefaultGracePeriod is how long, in seconds, auto-dock waits after the
	// OS emoji panel was opened from the pad.
	DefaultGracePeriod = 15

	// DefaultRevealHotkey brings the full panel back from anywhere.
	DefaultRevealHotkey = "Ctrl+Alt+Space"
)

// Preferences is the persisted user configuration.
type Preferences struct {
	// Geometry is the undocked frame as "WxH+X+Y"
	Geometry string `json:"geometry"`

	// Timeout is the idle auto-dock timeout in seconds
	Timeout int `json:"timeout"`

	// HideOnType docks the panel when a physical key is typed elsewhere
	HideOnType bool `json:"hide_on_type"`

	// AlwaysDefaultDock forces docking to the top edge near the left corner
	AlwaysDefaultDock bool `json:"always_default_dock"`

	// LastDockGeo is the last tab frame, reused so the tab stays put
	LastDockGeo string `json:"last_dock_geo,omitempty"`

	// LastDockEdge is the edge of LastDockGeo ("top", "left", "right")
	LastDockEdge string `json:"last_dock_edge,omitempty"`

	// UseGlass enables the acrylic backdrop
	UseGlass bool `json:"use_glass"`

	// GracePeriod suppresses auto-dock after the emoji panel opens (seconds)
	GracePeriod int `json:"grace_period"`

	// Layout is the pad shown in the full panel ("numpad", "keyboard", "media")
	Layout string `json:"layout"`

	// RevealHotkey is the global shortcut that undocks the panel
	RevealHotkey string `json:"reveal_hotkey,omitempty"`

	// StartOnLogin registers the panel to run at login
	StartOnLogin bool `json:"start_on_login"`
}

// Default returns the preferences used when nothing is stored yet.
func Default() Preferences {
	return Preferences{
		Geometry:     DefaultGeometry,
		Timeout:      DefaultTimeout,
		HideOnType:   true,
		UseGlass:     true,
		GracePeriod:  DefaultGracePeriod,
		Layout:       "numpad",
		RevealHotkey: DefaultRevealHotkey,
	}
}

// normalize repairs values a hand-edited file may have broken.
func (p *Preferences) normalize() {
	if p.Geometry == "" || strings.HasPrefix(p.Geometry, "1x1") {
		p.Geometry = DefaultGeometry
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.GracePeriod <= 0 {
		p.GracePeriod = DefaultGracePeriod
	}
	if p.Layout == "" {
		p.Layout = "numpad"
	}
}

// Manager handles loading and saving preferences
type Manager struct {
	mu         sync.Mutex
	configPath string
	prefs      Preferences
	lastSaved  []byte
	onChanged  []func(Preferences)
}

// NewManager creates a manager backed by the per-user config file
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a manager backed by an explicit file path
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		prefs:      Default(),
	}
}

// Path returns the backing file path
func (m *Manager) Path() string {
	return m.configPath
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	configDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Dir returns the per-user directory holding config.json and profiles.yaml,
// creating it when missing.
func Dir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "floatpad")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "floatpad")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

// Load reads preferences from disk. A missing file keeps the defaults; a
// malformed one resets to defaults and returns the parse error so the caller
// can log it.
func (m *Manager) Load() error {
	m.mu.Lock()
	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}

	prefs, perr := decode(data)
	m.prefs = prefs
	m.lastSaved = data
	m.mu.Unlock()

	m.notify()
	if perr != nil {
		return fmt.Errorf("parse %s: %w", m.configPath, perr)
	}
	return nil
}

// Reload re-reads the file after an external edit. Writes made by this
// manager are recognized and skipped; a malformed edit keeps the current
// preferences.
func (m *Manager) Reload() (bool, error) {
	m.mu.Lock()
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		m.mu.Unlock()
		return false, err
	}
	if bytes.Equal(data, m.lastSaved) {
		m.mu.Unlock()
		return false, nil
	}
	prefs, perr := decode(data)
	if perr != nil {
		m.mu.Unlock()
		return false, fmt.Errorf("parse %s: %w", m.configPath, perr)
	}
	m.prefs = prefs
	m.lastSaved = data
	m.mu.Unlock()

	m.notify()
	return true, nil
}

func decode(data []byte) (Preferences, error) {
	prefs := Default()
	if err := json.Unmarshal(data, &prefs); err != nil {
		return Default(), err
	}
	prefs.normalize()
	return prefs, nil
}

// Save writes the preferences to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	data, err := json.MarshalIndent(m.prefs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return err
	}
	m.lastSaved = data
	return nil
}

// Preferences returns a copy of the current preferences
func (m *Manager) Preferences() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

// Update mutates the preferences, flushes them to disk and notifies
// listeners. The in-memory change is kept even when the write fails.
func (m *Manager) Update(fn func(*Preferences)) error {
	m.mu.Lock()
	before := m.prefs
	fn(&m.prefs)
	changed := m.prefs != before
	err := m.saveLocked()
	m.mu.Unlock()

	if err != nil {
		log.Printf("Config: Failed to save %s: %v", m.configPath, err)
	}
	if changed {
		m.notify()
	}
	return err
}

// RegisterChangeCallback registers a function called after every change
func (m *Manager) RegisterChangeCallback(fn func(Preferences)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = append(m.onChanged, fn)
}

func (m *Manager) notify() {
	m.mu.Lock()
	prefs := m.prefs
	callbacks := append([]func(Preferences){}, m.onChanged...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(prefs)
	}
}
