// Package profiles switches the pad layout to match the application in the
// foreground.
package profiles

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the rules file kept next to the preferences.
const FileName = "profiles.yaml"

// Rule maps a keyword found in a window title or executable name to a
// layout.
type Rule struct {
	Match  string `yaml:"match"`
	Layout string `yaml:"layout"`
}

// Profiles is the content of the rules file.
type Profiles struct {
	// Enabled turns automatic switching on.
	Enabled bool   `yaml:"enabled"`
	Rules   []Rule `yaml:"rules"`
}

var (
	numpadApps   = []string{"excel", "calculator", "sheets", "numbers", "calc", "pin", "login", "netflix", "auth"}
	keyboardApps = []string{"word", "notepad", "docs", "writer", "outlook", "teams", "discord", "whatsapp", "chrome", "edge", "firefox", "brave", "slack"}
)

// Default returns the rules written on first start.
func Default() Profiles {
	p := Profiles{Enabled: true}
	for _, m := range numpadApps {
		p.Rules = append(p.Rules, Rule{Match: m, Layout: "numpad"})
	}
	for _, m := range keyboardApps {
		p.Rules = append(p.Rules, Rule{Match: m, Layout: "keyboard"})
	}
	return p
}

// Match returns the layout of the first rule whose keyword appears in the
// title or the executable name. Matching ignores case.
func (p Profiles) Match(title, exe string) (string, bool) {
	title = strings.ToLower(title)
	exe = strings.ToLower(exe)
	for _, r := range p.Rules {
		kw := strings.ToLower(strings.TrimSpace(r.Match))
		if kw == "" || r.Layout == "" {
			continue
		}
		if strings.Contains(title, kw) || strings.Contains(exe, kw) {
			return r.Layout, true
		}
	}
	return "", false
}

// Parse decodes a rules file.
func Parse(data []byte) (Profiles, error) {
	var p Profiles
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Profiles{}, fmt.Errorf("failed to parse profiles: %w", err)
	}
	return p, nil
}

// Store loads the rules file and reloads it when it changes on disk.
type Store struct {
	path string

	mu       sync.Mutex
	profiles Profiles
	modTime  time.Time
}

// NewStore creates a store for the rules file in dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName), profiles: Default()}
}

// Path returns the rules file path.
func (s *Store) Path() string { return s.path }

// Load reads the rules file, writing the defaults when it does not exist.
// A malformed file keeps the previous rules.
func (s *Store) Load() error {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return s.writeDefaults()
	}
	if err != nil {
		return fmt.Errorf("failed to stat profiles: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(info.ModTime())
}

// Profiles returns the current rules, reloading the file if it was edited.
func (s *Store) Profiles() Profiles {
	if info, err := os.Stat(s.path); err == nil {
		s.mu.Lock()
		if !info.ModTime().Equal(s.modTime) {
			if err := s.loadLocked(info.ModTime()); err != nil {
				log.Printf("Profiles: %v", err)
			}
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles
}

func (s *Store) loadLocked(modTime time.Time) error {
	s.modTime = modTime
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read profiles: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return err
	}
	s.profiles = p
	log.Printf("Profiles: Loaded %d rules from %s", len(p.Rules), s.path)
	return nil
}

func (s *Store) writeDefaults() error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	return nil
}
