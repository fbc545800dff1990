package roster

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/classrank/classrank/internal/adapters/repository"
	"github.com/classrank/classrank/pkg/logger"
	"github.com/classrank/classrank/pkg/metrics"
)

// Watch monitors path for changes and calls onChange with a freshly built,
// finalized store each time the file is rewritten. It runs until ctx is
// cancelled.
//
// If a reload fails (unreadable file, invalid YAML, rejected student), the
// error is logged and the previous store stays active — Watch does not call
// onChange.
func Watch(ctx context.Context, path string, onChange func(*repository.RecordStore)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	log := logger.Get().Named("roster")
	log.Info(ctx, "watching roster for changes", logger.String("path", path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only reload on write or create events. Editors often save via
			// rename (atomic save), so also catch fsnotify.Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			r, err := Load(path)
			if err != nil {
				log.Error(ctx, "roster reload failed; keeping previous store",
					logger.String("path", path), logger.Error(err))
				continue
			}
			store, err := Build(ctx, r)
			if err != nil {
				log.Error(ctx, "roster rebuild failed; keeping previous store",
					logger.String("path", path), logger.Error(err))
				continue
			}

			metrics.RecordRosterReload()
			log.Info(ctx, "roster reloaded",
				logger.String("path", path),
				logger.Int("students", store.Size(ctx)))
			onChange(store)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx, "roster watcher error", logger.Error(err))
		}
	}
}
