package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 250 * time.Millisecond

// Watch reloads the preferences whenever the backing file is edited outside
// the panel. It blocks until ctx is done.
func (m *Manager) Watch(ctx context.Context) error {
	target, err := filepath.Abs(m.configPath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	target = filepath.Clean(target)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer watcher.Close()

	// Editors replace files by rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					<-timerCh
				}
				timer.Reset(reloadDebounce)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			changed, err := m.Reload()
			if err != nil {
				log.Printf("Config: Ignoring external edit: %v", err)
				continue
			}
			if changed {
				log.Printf("Config: Reloaded %s after external edit", target)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Config: Watcher error: %v", err)
		}
	}
}
