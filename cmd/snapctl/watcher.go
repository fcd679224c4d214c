package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"snapcheck/pkg/diff"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// snapshotEvent is reported once a snapshot file has settled.
type snapshotEvent struct {
	Path    string
	Removed bool
	Summary string
}

// watchStats tracks watcher activity.
type watchStats struct {
	Written   int
	Removed   int
	Errors    int
	LastEvent time.Time
	LastPath  string
}

// snapshotWatcher watches a directory tree for snapshot files being written
// or removed. Rapid writes to one file are debounced into a single event.
type snapshotWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	root        string
	marker      string
	logger      *zap.Logger
	onSettled   func(snapshotEvent)
	debounceMap map[string]time.Time
	debounceDur time.Duration
	tick        time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stats       watchStats
}

func newSnapshotWatcher(root, marker string, logger *zap.Logger, onSettled func(snapshotEvent)) (*snapshotWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &snapshotWatcher{
		watcher:     w,
		root:        root,
		marker:      marker,
		logger:      logger,
		onSettled:   onSettled,
		debounceMap: make(map[string]time.Time),
		debounceDur: 200 * time.Millisecond,
		tick:        50 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start adds every directory below root and begins processing events.
// It does not block.
func (sw *snapshotWatcher) Start(ctx context.Context) error {
	sw.mu.Lock()
	if sw.running {
		sw.mu.Unlock()
		return nil
	}
	sw.running = true
	sw.mu.Unlock()

	if err := sw.addTree(sw.root); err != nil {
		sw.mu.Lock()
		sw.running = false
		sw.mu.Unlock()
		return err
	}
	sw.logger.Debug("watching", zap.String("root", sw.root), zap.Int("dirs", len(sw.watcher.WatchList())))

	go sw.run(ctx)
	return nil
}

// Stop stops the event loop and closes the underlying watcher.
func (sw *snapshotWatcher) Stop() {
	sw.mu.Lock()
	if !sw.running {
		sw.mu.Unlock()
		_ = sw.watcher.Close()
		return
	}
	sw.running = false
	sw.mu.Unlock()

	close(sw.stopCh)
	<-sw.doneCh

	if err := sw.watcher.Close(); err != nil {
		sw.logger.Warn("failed to close watcher", zap.Error(err))
	}
}

// Stats returns a copy of the current statistics.
func (sw *snapshotWatcher) Stats() watchStats {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.stats
}

func (sw *snapshotWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return sw.watcher.Add(path)
	})
}

func (sw *snapshotWatcher) run(ctx context.Context) {
	defer close(sw.doneCh)

	ticker := time.NewTicker(sw.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sw.stopCh:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			sw.handleEvent(event)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("watch error", zap.Error(err))
			sw.mu.Lock()
			sw.stats.Errors++
			sw.mu.Unlock()
		case <-ticker.C:
			sw.processSettled()
		}
	}
}

func (sw *snapshotWatcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := sw.addTree(event.Name); err != nil {
				sw.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}
	if !strings.Contains(filepath.Base(event.Name), sw.marker) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	sw.mu.Lock()
	sw.debounceMap[event.Name] = time.Now()
	sw.mu.Unlock()
}

func (sw *snapshotWatcher) processSettled() {
	sw.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range sw.debounceMap {
		if now.Sub(at) >= sw.debounceDur {
			settled = append(settled, path)
			delete(sw.debounceMap, path)
		}
	}
	sw.mu.Unlock()

	for _, path := range settled {
		sw.report(path)
	}
}

func (sw *snapshotWatcher) report(path string) {
	event := snapshotEvent{Path: path}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		event.Removed = true
	case err != nil:
		sw.logger.Warn("failed to read snapshot", zap.String("path", path), zap.Error(err))
		sw.mu.Lock()
		sw.stats.Errors++
		sw.mu.Unlock()
		return
	default:
		event.Summary = diff.Summary(data)
	}

	sw.mu.Lock()
	if event.Removed {
		sw.stats.Removed++
	} else {
		sw.stats.Written++
	}
	sw.stats.LastEvent = time.Now()
	sw.stats.LastPath = path
	sw.mu.Unlock()

	if sw.onSettled != nil {
		sw.onSettled(event)
	}
}
