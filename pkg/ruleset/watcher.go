package ruleset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval is how long the watcher waits after the last file
// event before reloading. Editors typically emit several events per save;
// debouncing prevents reload storms.
const DefaultDebounceInterval = 100 * time.Millisecond

// Watcher watches the manager's rule files and triggers reloads on change.
type Watcher struct {
	manager  *Manager
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher creates a watcher for the manager's rule source.
// A zero debounce uses DefaultDebounceInterval.
func NewWatcher(manager *Manager, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		manager:  manager,
		debounce: debounce,
		logger:   logger,
	}
}

// Watch blocks, reloading the manager whenever a watched rule file changes,
// until the context is cancelled. A failed reload is logged and the
// previous rule set keeps serving.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory rather than the file itself: editors that
	// rename-and-replace would otherwise detach the watch.
	path := w.manager.source.Path()
	watchDir := filepath.Dir(path)
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		watchDir = path
	}
	if err := fsw.Add(watchDir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", watchDir, err)
	}

	w.logger.Info("rule file watcher started",
		"path", path,
		"debounce_ms", w.debounce.Milliseconds(),
	)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("rule file watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("rule file changed",
				"op", event.Op.String(),
				"path", event.Name,
			)

			// Restart the debounce window.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerCh:
			if err := w.manager.Reload(ctx); err != nil {
				w.logger.Error("rule reload failed, keeping previous rule set",
					"error", err,
				)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("rule file watcher error", "error", err)
		}
	}
}

// relevant filters events down to YAML file changes under the watched path.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := filepath.Ext(event.Name)
	return ext == ".yaml" || ext == ".yml"
}
