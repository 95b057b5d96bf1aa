package profiles

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMatchOrder(t *testing.T) {
	p := Default()
	tests := []struct {
		title, exe string
		want       string
		ok         bool
	}{
		{"Budget.xlsx - Excel", "EXCEL.EXE", "numpad", true},
		{"Inbox - Outlook", "olk.exe", "keyboard", true},
		// "login" comes before "chrome" in the rule list.
		{"Bank Login - Google Chrome", "chrome.exe", "numpad", true},
		{"Untitled", "notepad.exe", "keyboard", true},
		{"Spotify Premium", "Spotify.exe", "", false},
	}
	for _, tt := range tests {
		got, ok := p.Match(tt.title, tt.exe)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Match(%q, %q) = %q, %v; want %q, %v", tt.title, tt.exe, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("rules:\n  - match: x\n    layuot: numpad\n")); err == nil {
		t.Errorf("expected an error for a misspelled field")
	}
	p, err := Parse([]byte("enabled: true\nrules:\n  - match: Figma\n    layout: media\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := Profiles{Enabled: true, Rules: []Rule{{Match: "Figma", Layout: "media"}}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreWritesDefaultsAndReloads(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("defaults not written: %v", err)
	}
	if diff := cmp.Diff(Default(), s.Profiles()); diff != "" {
		t.Errorf("initial rules (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(s.Path(), []byte("enabled: false\nrules: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(s.Path(), future, future); err != nil {
		t.Fatal(err)
	}
	if got := s.Profiles(); got.Enabled || len(got.Rules) != 0 {
		t.Errorf("edit not picked up: %+v", got)
	}

	if err := os.WriteFile(s.Path(), []byte("rules: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	later := future.Add(time.Hour)
	os.Chtimes(s.Path(), later, later)
	if got := s.Profiles(); got.Enabled {
		t.Errorf("malformed edit replaced the rules: %+v", got)
	}
}

type syncPoster struct{}

func (syncPoster) Post(fn func()) bool {
	fn()
	return true
}

type fakeSwitcher struct {
	layout  string
	changes []string
}

func (s *fakeSwitcher) Layout() string { return s.layout }
func (s *fakeSwitcher) SwitchLayout(name string) {
	s.layout = name
	s.changes = append(s.changes, name)
}

func TestWatcherSwitchesAndRestores(t *testing.T) {
	sw := &fakeSwitcher{layout: "media"}
	var app App
	var fgErr error
	w := NewWatcher(Default, func() (App, error) { return app, fgErr }, sw, syncPoster{}, "floatpad.exe")

	app = App{Title: "Book1 - Excel", Exe: "excel.exe"}
	w.Tick()
	app = App{Title: "Untitled - Notepad", Exe: "notepad.exe"}
	w.Tick()
	app = App{Title: "FloatPad", Exe: "FloatPad.exe"}
	w.Tick()
	fgErr = errors.New("no foreground window")
	w.Tick()
	fgErr = nil
	app = App{Title: "Spotify", Exe: "spotify.exe"}
	w.Tick()

	want := []string{"numpad", "keyboard", "media"}
	if diff := cmp.Diff(want, sw.changes); diff != "" {
		t.Errorf("layout changes (-want +got):\n%s", diff)
	}
}

func TestWatcherDisabled(t *testing.T) {
	sw := &fakeSwitcher{layout: "media"}
	rules := func() Profiles {
		p := Default()
		p.Enabled = false
		return p
	}
	w := NewWatcher(rules, func() (App, error) { return App{Title: "Excel"}, nil }, sw, syncPoster{}, "")
	w.Tick()
	if len(sw.changes) != 0 {
		t.Errorf("disabled watcher switched layouts: %v", sw.changes)
	}
}
