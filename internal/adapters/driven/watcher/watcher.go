// Package watcher reports changes to the shopping list database made by
// other processes, using fsnotify on the data directory.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/basket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/basket-cli/internal/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to
// settle before signalling.
const DefaultDebounce = 300 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// Watcher watches one database file and its SQLite side files
// (-wal, -shm, -journal).
type Watcher struct {
	dir      string
	file     string
	debounce time.Duration
}

// New creates a watcher for dbPath.
func New(dbPath string) *Watcher {
	return &Watcher{
		dir:      filepath.Dir(dbPath),
		file:     filepath.Base(dbPath),
		debounce: DefaultDebounce,
	}
}

// WithDebounce sets the debounce duration.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch starts watching. The data directory is created if missing so a
// watcher can start before the database is first opened.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := os.MkdirAll(w.dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// The directory is watched so the file being created or replaced is seen.
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}

	logger.Debug("watching %s for changes", filepath.Join(w.dir, w.file))

	out := make(chan struct{}, 1)
	go w.loop(ctx, fw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)
	defer fw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case out <- struct{}{}:
			default:
				// A signal is already pending.
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)

		case <-ctx.Done():
			return
		}
	}
}

// relevant reports whether event touches the database or one of its side
// files in a way that may change its contents.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Dir(event.Name) != w.dir {
		return false
	}
	base := filepath.Base(event.Name)
	if base != w.file && !strings.HasPrefix(base, w.file+"-") {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
