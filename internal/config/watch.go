package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path each time it is written and passes every valid result
// to apply. Edits that fail to load are logged and skipped. Watch blocks
// until ctx is done.
func Watch(ctx context.Context, path string, apply func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watching config: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so watch its directory.
	name := filepath.Clean(path)
	if err := w.Add(filepath.Dir(name)); err != nil {
		return fmt.Errorf("watching config %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			c, err := Load(path)
			if err != nil {
				log.Printf("[CONFIG] ignoring edit: %v", err)
				continue
			}
			log.Printf("[CONFIG] reloaded %s", path)
			apply(c)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[CONFIG] watcher error: %v", err)
		}
	}
}
