package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 200 * time.Millisecond

// fileWatcher reports changes to a single file. The parent directory is
// watched so editors that replace the file on save are still seen.
type fileWatcher struct {
	path string
	w    *fsnotify.Watcher
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", filepath.Dir(abs), err)
	}
	return &fileWatcher{path: abs, w: w}, nil
}

// run calls onChange after the file is written, debounced, until ctx is
// done. The watcher is closed on return.
func (fw *fileWatcher) run(ctx context.Context, onChange func()) error {
	defer fw.w.Close()

	// Runs never overlap even when a change lands mid-regeneration.
	var mu sync.Mutex
	fire := func() {
		mu.Lock()
		defer mu.Unlock()
		onChange()
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Debounce: reset timer on each event.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, fire)

		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// watchFile blocks calling onChange for every debounced change to path.
func watchFile(ctx context.Context, path string, onChange func()) error {
	fw, err := newFileWatcher(path)
	if err != nil {
		return err
	}
	log.Printf("Watching %s for changes", fw.path)
	return fw.run(ctx, onChange)
}
