package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange after changes anywhere under root settle for the
// debounce interval. Directories created while watching are added. It blocks
// until ctx is done, then closes the watcher.
func Watch(
	ctx context.Context,
	root string,
	debounce time.Duration,
	logger *slog.Logger,
	onChange func(),
) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("prepare watch root %s: %w", root, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, root); err != nil {
		return err
	}

	logger.Info("watching corpus", "root", root)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			logger.Info("corpus watch stopped", "root", root)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&relevant == 0 {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						logger.Warn("corpus watch subdirectory failed", "dir", event.Name, "error", err)
					}
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("corpus watch error", "error", err)
		case <-timer.C:
			onChange()
		}
	}
}

// addTree watches dir and every non-hidden directory below it. fsnotify
// watches are not recursive.
func addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
