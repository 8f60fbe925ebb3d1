package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/farmergreg/rfsnotify"
	log "github.com/sirupsen/logrus"
	"gopkg.in/fsnotify.v1"

	"github.com/mahyarmirrashed/extd/internal/sorter"
)

// Watch keeps sorting files as they appear directly under the sorter's
// root. It blocks until ctx is cancelled or the watcher shuts down.
func Watch(ctx context.Context, s *sorter.Sorter, delay time.Duration) error {
	watcher, err := rfsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// The watch is recursive so moves into category subfolders surface as
	// events too; the direct-child filter below drops those again.
	if err := watcher.AddRecursive(s.Root); err != nil {
		return err
	}

	log.Infof("Watching %s", s.Root)

	root := filepath.Clean(s.Root)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op != fsnotify.Create {
				continue
			}
			if filepath.Dir(event.Name) != root {
				continue
			}

			// Delay addresses an issue with Windows File Explorer
			if delay > 0 {
				time.Sleep(delay)
			}

			info, err := os.Lstat(event.Name)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}

			s.SortFile(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("error:", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
