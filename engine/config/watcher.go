package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk.
// The directory is watched rather than the file so editors that save by rename are seen.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan Config
	done    chan struct{}
	wg      sync.WaitGroup
}

// Watch starts watching path. Every successful reload replaces any unread
// pending config returned by Poll; failed reloads are logged and dropped, so the
// consumer keeps its previous config.
//
// Parameters:
//   - path: the config file to watch
//
// Returns:
//   - *Watcher: the running watcher
//   - error: if the underlying fsnotify watcher cannot be created
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Poll returns the most recent reloaded config without blocking.
//
// Returns:
//   - Config: the reloaded config
//   - bool: false if nothing changed since the last poll
func (w *Watcher) Poll() (Config, bool) {
	select {
	case cfg := <-w.updates:
		return cfg, true
	default:
		return Config{}, false
	}
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Config] watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("[Config] reload failed, keeping previous config: %v", err)
		return
	}
	// Replace a pending update so the consumer always sees the latest file.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	log.Printf("[Config] reloaded %s", w.path)
}
