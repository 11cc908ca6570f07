package fontsource

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates an Index when anything changes below the font directories.
type Watcher struct {
	index    *Index
	dirs     []string
	debounce time.Duration
	logger   *zap.Logger
}

// NewWatcher creates a watcher for dirs. Events are coalesced over debounce.
func NewWatcher(index *Index, dirs []string, debounce time.Duration, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{index: index, dirs: dirs, debounce: debounce, logger: logger}
}

// Run watches until ctx is done. Directories that do not exist are skipped.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		w.addTree(fw, dir)
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
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.addTree(fw, ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Font watcher error", zap.Error(err))
		case <-timerCh:
			timer, timerCh = nil, nil
			w.logger.Info("Font directories changed, invalidating index")
			w.index.Invalidate()
		}
	}
}

// fsnotify is not recursive, so every subdirectory is added explicitly.
func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				w.logger.Debug("Cannot watch directory", zap.String("path", path), zap.Error(err))
			}
		}
		return nil
	})
}
