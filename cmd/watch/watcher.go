package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// watchTarget is the set of files a watch reacts to.
// Parent directories are watched so editors that replace files atomically are still seen.
type watchTarget struct {
	files map[string]bool
	dirs  []string
}

func newWatchTarget(paths ...string) (watchTarget, error) {
	t := watchTarget{files: make(map[string]bool)}
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return watchTarget{}, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		t.files[abs] = true
		if dir := filepath.Dir(abs); !slices.Contains(t.dirs, dir) {
			t.dirs = append(t.dirs, dir)
		}
	}
	slices.Sort(t.dirs)
	return t, nil
}

func (t watchTarget) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return t.files[abs]
}

// watchAndRerun calls rerun once per burst of relevant changes until ctx is done.
func watchAndRerun(ctx context.Context, target watchTarget, errOut io.Writer, rerun func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range target.dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !target.matches(event) {
				continue
			}
			debounce = time.After(debounceInterval)

		case <-debounce:
			debounce = nil
			rerun()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watcher error: %v\n", err)
		}
	}
}
