package server

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch rescans the doc tree whenever something under cfg.Root changes,
// coalescing bursts of events into one rescan. It blocks until ctx is done.
func (s *Server) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()

	s.addDirsRecursive(watcher, s.cfg.Root)
	s.setWatcher(watcher)
	defer s.setWatcher(nil)

	trigger, stop := s.debouncer(s.cfg.RescanDelay)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignored(ev.Name) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					s.addDirsRecursive(watcher, ev.Name)
				}
			}
			s.log.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher error", "error", err)
		}
	}
}

func (s *Server) setWatcher(w *fsnotify.Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcher = w
}

// watching reports whether dir is currently watched.
func (s *Server) watching(dir string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.watcher == nil {
		return false
	}
	return slices.Contains(s.watcher.WatchList(), dir)
}

// debouncer returns a trigger that runs Rescan once delay has passed
// without another trigger.
func (s *Server) debouncer(delay time.Duration) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			if err := s.Rescan(); err != nil {
				s.log.Warn("rescan failed", "error", err)
			}
		})
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}

func (s *Server) addDirsRecursive(w *fsnotify.Watcher, root string) {
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && ignored(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			s.log.Warn("watch add failed", "dir", path, "error", err)
		}
		return nil
	})
}

// ignored skips hidden files, editor swap files and node_modules.
func ignored(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		base == "node_modules"
}
