package catalog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the catalog at path whenever it is written and passes the
// result to onChange. It runs until ctx is cancelled.
//
// A reload that fails to parse or validate is logged and skipped, so the
// previously loaded catalog stays in service.
func Watch(ctx context.Context, path string, log *zap.Logger, onChange func(*Catalog)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: an atomic save renames a new file over path,
	// which drops a watch held on the old inode.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	log.Info("catalog: watching for changes", zap.String("path", path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			c, err := Load(path)
			if err != nil {
				log.Error("catalog: reload failed, keeping previous catalog",
					zap.String("path", path), zap.Error(err))
				continue
			}

			log.Info("catalog: reloaded",
				zap.String("path", path),
				zap.Int("products", c.Len()),
				zap.String("hash", c.Hash))
			onChange(c)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("catalog: watcher error", zap.Error(err))
		}
	}
}
