package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures a storage watcher.
type WatcherConfig struct {
	// Dir is the storage directory to watch.
	Dir string

	// Files are the base names to report; other files in Dir are ignored.
	Files []string

	// DebounceDelay collapses bursts of events (temp write + rename) into one.
	DebounceDelay time.Duration

	Logger *slog.Logger
}

// Watcher reports changes to stored values made outside this process.
type Watcher struct {
	config   WatcherConfig
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	onChange func(file string)
	files    map[string]bool

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher creates a watcher that calls onChange with the base name of a
// changed file once its events settle.
func NewWatcher(config WatcherConfig, onChange func(file string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}

	files := make(map[string]bool, len(config.Files))
	for _, f := range config.Files {
		files[f] = true
	}

	return &Watcher{
		config:   config,
		watcher:  fsw,
		logger:   logger,
		onChange: onChange,
		files:    files,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Start begins watching until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.config.Dir); err != nil {
		return err
	}
	go w.processEvents(ctx)

	w.logger.Info("Storage watcher started",
		"dir", w.config.Dir,
		"files", w.config.Files)
	return nil
}

// Close stops the watcher and drops pending notifications.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for name, t := range w.timers {
		t.Stop()
		delete(w.timers, name)
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name := filepath.Base(event.Name)
			if !w.files[name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("Storage file event", "file", name, "op", event.Op.String())
			w.schedule(name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Storage watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[name]; ok {
		t.Reset(w.config.DebounceDelay)
		return
	}
	w.timers[name] = time.AfterFunc(w.config.DebounceDelay, func() {
		w.mu.Lock()
		delete(w.timers, name)
		w.mu.Unlock()
		w.onChange(name)
	})
}
