package engine

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"table-gen/internal/tmplsrc"
)

// WatchDebounce is how long Watch waits for changes to settle before rerunning.
var WatchDebounce = 300 * time.Millisecond

// Watch calls fn after every change to the template directory dir, including
// its multi/ and single/ subdirectories, until ctx is done. Each call is a
// full regeneration; failures are logged and watching continues.
func Watch(ctx context.Context, dir string, fn func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	groups := map[string]bool{
		filepath.Join(dir, tmplsrc.Multi.String()):  true,
		filepath.Join(dir, tmplsrc.Single.String()): true,
	}
	for sub := range groups {
		// Missing group directories are picked up once created.
		_ = w.Add(sub)
	}
	log.Printf("Watching %s for template changes...", dir)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && groups[filepath.Clean(ev.Name)] {
				if err := w.Add(ev.Name); err != nil {
					log.Printf("Failed to watch %s: %v", ev.Name, err)
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(WatchDebounce)
			} else {
				timer.Reset(WatchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch error: %v", err)
		case <-fire:
			fire = nil
			log.Println("Templates changed, regenerating...")
			if err := fn(ctx); err != nil {
				log.Printf("Generation failed: %v", err)
			}
		}
	}
}
