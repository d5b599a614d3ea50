package file

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/codelens/internal/logger"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a ConfigStore when its file changes on disk and notifies
// a callback after every successful reload.
//
// The parent directory is watched rather than the file itself so that
// atomic rename-on-save and delete/recreate are both observed.
type Watcher struct {
	store    *ConfigStore
	onChange func()
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher starts watching the directory of store's file. Call Run to
// process events and Close (or cancel Run's context) to stop.
func NewWatcher(store *ConfigStore, onChange func(), debounce time.Duration) (*Watcher, error) {
	if store == nil {
		return nil, errors.New("config watcher: store is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		store:    store,
		onChange: onChange,
		debounce: debounce,
		fsw:      fsw,
	}, nil
}

// Run blocks, reloading the store on change, until ctx is cancelled or
// the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", "error", err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (w *Watcher) reload() {
	if err := w.store.Load(); err != nil {
		// Keep serving the previous values until the file parses again.
		logger.Warn("config reload failed", "path", w.store.Path(), "error", err)
		return
	}
	logger.Info("config reloaded", "path", w.store.Path())
	if w.onChange != nil {
		w.onChange()
	}
}
