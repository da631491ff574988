package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the config file and invokes onChange with the freshly
// loaded configuration whenever it is rewritten. Invalid intermediate
// states (editors often truncate then write) are skipped. Watch blocks
// until ctx is cancelled.
func Watch(ctx context.Context, onChange func(*Config)) error {
	path, err := Path()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: many editors replace the file
	// on save, which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	var debounce *time.Timer
	reload := func() {
		cfg, err := Load()
		if err != nil {
			log.Printf("[Config] reload skipped: %v", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			log.Printf("[Config] reload skipped, invalid config: %v", err)
			return
		}
		onChange(cfg)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Debounce bursts of events from a single save.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[Config] watch error: %v", err)
		}
	}
}
