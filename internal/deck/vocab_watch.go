package deck

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchVocabulary reloads the builder's vocabulary whenever the TOML file
// changes, so keyword tuning does not need a restart. Blocks until the
// context is cancelled. The watch is on the directory because editors
// typically replace the file rather than write it in place.
func (b *Builder) WatchVocabulary(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	// Editors fire several events per save; debounce so we reload once.
	var reload <-chan time.Time

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
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			reload = time.After(250 * time.Millisecond)
		case <-reload:
			reload = nil
			vocab, err := LoadVocabulary(path)
			if err != nil {
				b.logger.Warn("vocabulary reload failed", "path", path, "error", err)
				continue
			}
			b.SetVocabulary(vocab)
			b.logger.Info("vocabulary reloaded", "path", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("vocabulary watcher error", "error", err)
		}
	}
}
