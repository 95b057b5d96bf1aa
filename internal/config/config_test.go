package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	if err := m.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), m.Preferences()); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	m := NewManagerAt(path)
	m.prefs.Timeout = 42

	if err := m.Load(); err == nil {
		t.Fatal("expected a parse error")
	}
	if diff := cmp.Diff(Default(), m.Preferences()); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"geometry":"1x1+0+0","timeout":10,"hide_on_type":false,"last_dock_geo":"80x20+450+0"}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	m := NewManagerAt(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := Default()
	want.Timeout = 10
	want.HideOnType = false
	want.LastDockGeo = "80x20+450+0"
	if diff := cmp.Diff(want, m.Preferences()); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdatePersistsAndNotifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	m := NewManagerAt(path)

	var seen []Preferences
	m.RegisterChangeCallback(func(p Preferences) { seen = append(seen, p) })

	if err := m.Update(func(p *Preferences) { p.AlwaysDefaultDock = true }); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(seen) != 1 || !seen[0].AlwaysDefaultDock {
		t.Fatalf("callback not invoked with new prefs: %+v", seen)
	}

	// Unchanged updates still flush but do not notify.
	if err := m.Update(func(p *Preferences) {}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 {
		t.Errorf("no-op update notified listeners")
	}

	reloaded := NewManagerAt(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if !reloaded.Preferences().AlwaysDefaultDock {
		t.Errorf("always_default_dock was not persisted")
	}
}

func TestLastDockGeoOmittedWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := NewManagerAt(path)
	if err := m.Save(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "last_dock_geo") {
		t.Errorf("empty last_dock_geo should be omitted: %s", data)
	}
}

func TestReloadSkipsOwnWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := NewManagerAt(path)
	if err := m.Update(func(p *Preferences) { p.Timeout = 10 }); err != nil {
		t.Fatal(err)
	}
	changed, err := m.Reload()
	if err != nil || changed {
		t.Fatalf("Reload after own write = (%v, %v), want (false, nil)", changed, err)
	}

	if err := os.WriteFile(path, []byte(`{"timeout":30}`), 0644); err != nil {
		t.Fatal(err)
	}
	changed, err = m.Reload()
	if err != nil || !changed {
		t.Fatalf("Reload after external edit = (%v, %v), want (true, nil)", changed, err)
	}
	if got := m.Preferences().Timeout; got != 30 {
		t.Errorf("timeout = %d, want 30", got)
	}

	if err := os.WriteFile(path, []byte(`garbage`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Reload(); err == nil {
		t.Errorf("expected error for malformed edit")
	}
	if got := m.Preferences().Timeout; got != 30 {
		t.Errorf("malformed edit changed timeout to %d", got)
	}
}

func TestWatchPicksUpExternalEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := NewManagerAt(path)
	if err := m.Save(); err != nil {
		t.Fatal(err)
	}

	changed := make(chan Preferences, 1)
	m.RegisterChangeCallback(func(p Preferences) {
		select {
		case changed <- p:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Watch(ctx)

	// Give the watcher time to register before editing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"timeout":10}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p.Timeout != 10 {
			t.Errorf("timeout = %d, want 10", p.Timeout)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not reload the edited file")
	}
}
