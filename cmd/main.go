// FloatPad - a floating, edge-docking touch pad
// Docks itself to a screen edge when idle or when the user types elsewhere.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"floatpad/internal/animate"
	"floatpad/internal/autostart"
	"floatpad/internal/config"
	"floatpad/internal/dock"
	"floatpad/internal/geom"
	"floatpad/internal/hotkey"
	"floatpad/internal/idle"
	"floatpad/internal/input"
	"floatpad/internal/osutils"
	"floatpad/internal/panel"
	"floatpad/internal/profiles"
	"floatpad/internal/tray"
	"floatpad/internal/uiloop"
	"floatpad/internal/window"
)

var (
	version    = "0.1.0"
	showVer    = flag.Bool("version", false, "Show version")
	configPath = flag.String("config", "", "Path to config.json")
	resetGeo   = flag.Bool("reset", false, "Forget the saved panel and tab positions")
	debug      = flag.Bool("debug", false, "Verbose logging")
)

const (
	startupDockDelay = 100 * time.Millisecond
	shutdownTimeout  = 2 * time.Second
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("floatpad version %s\n", version)
		return
	}
	if *debug {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}

	// Initialize config
	var cfgMgr *config.Manager
	if *configPath != "" {
		cfgMgr = config.NewManagerAt(*configPath)
	} else {
		var err error
		cfgMgr, err = config.NewManager()
		if err != nil {
			log.Fatalf("Failed to initialize config: %v", err)
		}
	}
	if err := cfgMgr.Load(); err != nil {
		log.Printf("Warning: failed to load config, using defaults: %v", err)
	}

	if *resetGeo {
		err := cfgMgr.Update(func(p *config.Preferences) {
			p.Geometry = config.DefaultGeometry
			p.LastDockGeo = ""
			p.LastDockEdge = ""
		})
		if err != nil {
			log.Fatalf("Failed to reset geometry: %v", err)
		}
		log.Printf("Saved positions cleared")
		return
	}

	runPanel(cfgMgr)
}

// panelTarget joins the window and the dock machine for the keyboard hook.
type panelTarget struct {
	win     *window.Window
	machine *dock.Machine
}

func (t panelTarget) Visible() bool             { return t.win.Visible() }
func (t panelTarget) Undocked() bool            { return t.machine.Undocked() }
func (t panelTarget) RequestDock(animated bool) { t.machine.RequestDock(animated) }

func runPanel(cfgMgr *config.Manager) {
	log.Println("FloatPad starting...")
	prefs := cfgMgr.Preferences()

	if runtime.GOOS == "windows" && !osutils.IsAdmin() {
		log.Println("Note: Keys cannot reach elevated windows unless FloatPad runs as Administrator")
	}
	if err := autostart.Sync(prefs.StartOnLogin); err != nil {
		log.Printf("Warning: failed to sync start on login: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := uiloop.New(0)

	start, err := geom.ParseSane(prefs.Geometry, dock.MinSaneWidth)
	if err != nil {
		start, _ = geom.ParseRect(config.DefaultGeometry)
	}
	win, err := window.New(loop, window.Options{Title: "FloatPad", Geometry: start, Glass: prefs.UseGlass})
	if err != nil {
		log.Fatalf("Failed to create panel window: %v", err)
	}

	clock := idle.NewState()
	machine := dock.NewMachine(win, dock.NewPlanner(dock.DefaultSnapThreshold), animate.New(loop), cfgMgr, clock)
	machine.OnChange(func(s dock.State) {
		if s == dock.Docked {
			log.Printf("Panel: Docked at %s edge", machine.Edge())
		} else {
			log.Printf("Panel: %s", s)
		}
	})

	// Keyboard: one global hook feeds both the on-type dock trigger and
	// the reveal hotkey.
	interceptor := input.NewInterceptor(panelTarget{win: win, machine: machine}, loop, func() bool {
		return cfgMgr.Preferences().HideOnType
	})
	injector := input.NewInjector(interceptor)
	ctrl := panel.New(machine, cfgMgr, clock, injector, win, loop)
	win.SetHandler(ctrl)

	hkMgr := hotkey.NewManager()
	interceptor.AddListener(func(ev input.KeyEvent) bool {
		return hkMgr.HandleVK(ev.VKCode, ev.Down)
	})
	refreshHotkey := func(p config.Preferences) {
		hkMgr.Clear()
		if _, err := hkMgr.Register(p.RevealHotkey, func() {
			loop.Post(ctrl.ToggleDock)
		}); err != nil {
			log.Printf("Warning: failed to register reveal hotkey: %v", err)
		}
	}
	refreshHotkey(prefs)

	if err := interceptor.Start(); err != nil {
		// Auto-dock on typing and the hotkey are lost; the pad still works.
		log.Printf("Warning: keyboard hook unavailable: %v", err)
	}

	// Idle auto-dock.
	monitor := idle.NewMonitor(clock, win, machine, loop, func() time.Duration {
		return time.Duration(cfgMgr.Preferences().Timeout) * time.Second
	})
	go monitor.Run(ctx)

	// Per-application layouts.
	if dir, err := config.Dir(); err != nil {
		log.Printf("Warning: app profiles disabled: %v", err)
	} else {
		store := profiles.NewStore(dir)
		if err := store.Load(); err != nil {
			log.Printf("Warning: failed to load app profiles: %v", err)
		}
		self := ""
		if exe, err := os.Executable(); err == nil {
			self = filepath.Base(exe)
		}
		watcher := profiles.NewWatcher(store.Profiles, foregroundApp, ctrl, loop, self)
		go watcher.Run(ctx)
	}

	go func() {
		if err := cfgMgr.Watch(ctx); err != nil {
			log.Printf("Warning: config hot reload disabled: %v", err)
		}
	}()

	// Tray
	t := tray.New("FloatPad", "FloatPad - floating pad")
	shutdown := func() { t.Stop() }
	ctrl.SetQuit(shutdown)

	t.AddMenuItem("Show", func() { loop.Post(ctrl.Show) })
	t.AddMenuItem("Dock to Default", func() { loop.Post(ctrl.DockToDefault) })
	t.AddSeparator()
	typingID := t.AddCheckbox("Auto-Dock on Typing", prefs.HideOnType, func() {
		loop.Post(func() { ctrl.SetHideOnType(!cfgMgr.Preferences().HideOnType) })
	})
	topLeftID := t.AddCheckbox("Always Dock Top-Left", prefs.AlwaysDefaultDock, func() {
		loop.Post(func() { ctrl.SetAlwaysDefaultDock(!cfgMgr.Preferences().AlwaysDefaultDock) })
	})
	glassID := t.AddCheckbox("Glass", prefs.UseGlass, func() { loop.Post(ctrl.ToggleGlass) })

	timerMenu := t.AddSubMenu("Auto-Dock Timer")
	timers := map[int]int{}
	for _, opt := range []struct {
		label   string
		seconds int
	}{
		{"5 Seconds", 5},
		{"10 Seconds", 10},
		{"Never", config.NeverTimeout},
	} {
		id := t.AddSubMenuItem(timerMenu, opt.label, prefs.Timeout == opt.seconds, func() {
			loop.Post(func() { ctrl.SetTimeout(opt.seconds) })
		})
		timers[id] = opt.seconds
	}

	loginID := t.AddCheckbox("Start on Login", prefs.StartOnLogin, func() {
		want := !cfgMgr.Preferences().StartOnLogin
		if err := autostart.Sync(want); err != nil {
			log.Printf("Failed to change start on login: %v", err)
			return
		}
		if err := cfgMgr.Update(func(p *config.Preferences) { p.StartOnLogin = want }); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	})
	t.AddSeparator()
	t.AddMenuItem("Quit", shutdown)

	syncTray := func(p config.Preferences) {
		t.SetItemChecked(typingID, p.HideOnType)
		t.SetItemChecked(topLeftID, p.AlwaysDefaultDock)
		t.SetItemChecked(glassID, p.UseGlass)
		t.SetItemChecked(loginID, p.StartOnLogin)
		for id, seconds := range timers {
			t.SetItemChecked(id, p.Timeout == seconds)
		}
	}

	// Preferences change from the panel, the tray or an external edit.
	cfgMgr.RegisterChangeCallback(func(p config.Preferences) {
		syncTray(p)
		refreshHotkey(p)
		loop.Post(func() { ctrl.ApplyPreferences(p) })
	})

	loop.Post(func() {
		win.Show()
		clock.Reset()
	})
	loop.After(startupDockDelay, func() { machine.RequestDock(false) })

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		t.Stop()
	}()
	go func() {
		<-win.Done()
		t.Stop()
	}()

	log.Println("FloatPad running. Press Ctrl+C to stop.")
	t.Run()

	cancel()
	stopWithTimeout("keyboard hook", interceptor.Stop)
	if err := cfgMgr.Save(); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	loop.Stop()
	stopWithTimeout("window", func() error {
		win.Close()
		return nil
	})
	log.Println("FloatPad stopped")
}

func foregroundApp() (profiles.App, error) {
	app, err := osutils.ForegroundApp()
	if err != nil {
		return profiles.App{}, err
	}
	return profiles.App{Title: app.Title, Exe: app.Exe}, nil
}

// stopWithTimeout runs a shutdown step, logging instead of hanging or
// failing when it misbehaves.
func stopWithTimeout(name string, fn func() error) {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		if err != nil {
			log.Printf("Shutdown: %s: %v", name, err)
		}
	case <-time.After(shutdownTimeout):
		log.Printf("Shutdown: %s did not stop within %s", name, shutdownTimeout)
	}
}
