package profiles

import (
	"context"
	"log"
	"strings"
	"time"
)

// PollInterval is how often the foreground window is checked.
const PollInterval = 1200 * time.Millisecond

// App identifies the foreground window.
type App struct {
	Title string
	Exe   string
}

// Switcher changes the pad layout without saving it as the user's choice.
// Its methods run on the UI loop.
type Switcher interface {
	Layout() string
	SwitchLayout(name string)
}

// Poster runs fn on the UI loop.
type Poster interface {
	Post(fn func()) bool
}

// Watcher follows the foreground application and applies matching rules.
type Watcher struct {
	rules      func() Profiles
	foreground func() (App, error)
	switcher   Switcher
	poster     Poster
	self       string

	last     App
	switched bool
	previous string
}

// NewWatcher creates a watcher. Windows of the executable named self are
// ignored so focusing the panel never changes its own layout.
func NewWatcher(rules func() Profiles, foreground func() (App, error), switcher Switcher, poster Poster, self string) *Watcher {
	return &Watcher{
		rules:      rules,
		foreground: foreground,
		switcher:   switcher,
		poster:     poster,
		self:       strings.ToLower(self),
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Tick()
		}
	}
}

// Tick checks the foreground application once.
func (w *Watcher) Tick() {
	p := w.rules()
	if !p.Enabled {
		return
	}
	app, err := w.foreground()
	if err != nil || app == w.last {
		return
	}
	if w.self != "" && strings.ToLower(app.Exe) == w.self {
		return
	}
	w.last = app

	if layout, ok := p.Match(app.Title, app.Exe); ok {
		w.poster.Post(func() {
			current := w.switcher.Layout()
			if current == layout {
				return
			}
			if !w.switched {
				w.previous = current
				w.switched = true
			}
			log.Printf("Profiles: %q matched, switching to %s", app.Title, layout)
			w.switcher.SwitchLayout(layout)
		})
		return
	}

	w.poster.Post(func() {
		if !w.switched {
			return
		}
		w.switched = false
		if w.previous != "" && w.previous != w.switcher.Layout() {
			w.switcher.SwitchLayout(w.previous)
		}
	})
}
