package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/grok-error-dashboard/internal/logger"
)

// Watcher reloads configuration when the active .env file changes, so
// credential rotations do not require a dashboard restart.
type Watcher struct {
	envPath       string
	watcher       *fsnotify.Watcher
	onReload      func(*Config)
	stopChan      chan struct{}
	stopOnce      sync.Once
	mu            sync.Mutex
	debounceTimer *time.Timer
}

// Watch starts watching the first existing .env path and invokes
// onReload with the freshly loaded config after each change. When no
// .env file exists there is nothing to watch and Watch returns nil.
func Watch(onReload func(*Config)) (*Watcher, error) {
	envPath := firstExistingEnvPath()
	if envPath == "" {
		return nil, nil
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory to catch atomic replace (rename + create).
	if err := fsWatcher.Add(filepath.Dir(envPath)); err != nil {
		if closeErr := fsWatcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, err
	}

	w := &Watcher{
		envPath:  envPath,
		watcher:  fsWatcher,
		onReload: onReload,
		stopChan: make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// watchLoop handles file system events with debouncing.
func (w *Watcher) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.envPath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.mu.Lock()
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, w.handleChange)
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("env watcher error", "error", err)

		case <-w.stopChan:
			return
		}
	}
}

// handleChange reloads configuration after an external change.
func (w *Watcher) handleChange() {
	cfg, err := Load()
	if err != nil {
		logger.Error("failed to reload configuration", "path", w.envPath, "error", err)
		return
	}
	logger.Info("configuration reloaded", "path", w.envPath)
	w.onReload(cfg)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
	})
	return err
}

func firstExistingEnvPath() string {
	for _, path := range EnvPaths() {
		if fileExists(path) {
			return path
		}
	}
	return ""
}
