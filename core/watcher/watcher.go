package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/iconforge/core/logger"
)

type FileWatcher interface {
	Watch(ctx context.Context) error
	Close() error
}

// IconWatcher re-runs OnChange after icon files under RootDir change. Bursts
// of events are coalesced by the debounce timer and runs never overlap.
type IconWatcher struct {
	Watcher      *fsnotify.Watcher
	RootDir      string
	ExcludePaths []string
	Extensions   []string
	Debounce     time.Duration
	OnChange     func() error

	mu            sync.Mutex
	runMu         sync.Mutex
	debounceTimer *time.Timer
}

func NewIconWatcher(rootDir string, extensions, excludePaths []string, debounce time.Duration, onChange func() error) (*IconWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to resolve %s: %w", rootDir, err)
	}

	// excludePaths are filesystem paths; only those inside rootDir matter.
	excludes := []string{".git", "node_modules"}
	for _, p := range excludePaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absRoot, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		excludes = append(excludes, rel)
	}
	logger.Debug("Excluding paths: %v", excludes)

	return &IconWatcher{
		Watcher:      w,
		RootDir:      absRoot,
		ExcludePaths: excludes,
		Extensions:   extensions,
		Debounce:     debounce,
		OnChange:     onChange,
	}, nil
}

func (fw *IconWatcher) Watch(ctx context.Context) error {
	if err := fw.addWatchersRecursively(fw.RootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}
	logger.Info("Watching %s for changes", fw.RootDir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			fw.handleEvent(event)

		case err, ok := <-fw.Watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (fw *IconWatcher) handleEvent(event fsnotify.Event) {
	if fw.shouldExcludePath(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
			logger.Debug("Adding watcher for new directory: %s", event.Name)
			if err := fw.addWatchersRecursively(event.Name); err != nil {
				logger.Error("Failed to watch %s: %v", event.Name, err)
			}
			fw.debounceGenerate()
			return
		}
	}

	if !fw.isRelevant(event.Name) {
		return
	}

	logger.Debug("File event: %s %s", event.Op, event.Name)
	fw.debounceGenerate()
}

// isRelevant accepts icon files and extensionless paths, which are most
// likely removed or renamed directories.
func (fw *IconWatcher) isRelevant(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return true
	}
	for _, want := range fw.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

func (fw *IconWatcher) debounceGenerate() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}

	fw.debounceTimer = time.AfterFunc(fw.Debounce, func() {
		fw.runMu.Lock()
		defer fw.runMu.Unlock()

		logger.Debug("File changes detected, regenerating...")
		if err := fw.OnChange(); err != nil {
			logger.Error("Regeneration failed: %v", err)
		}
	})
}

func (fw *IconWatcher) Close() error {
	fw.mu.Lock()
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.mu.Unlock()

	return fw.Watcher.Close()
}

func (fw *IconWatcher) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(fw.RootDir, path)
	if err != nil {
		return false
	}

	relPath = filepath.Clean(relPath)

	for _, excludePath := range fw.ExcludePaths {
		if relPath == excludePath {
			return true
		}
		if strings.HasPrefix(relPath, excludePath+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

func (fw *IconWatcher) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if fw.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := fw.Watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}

		return nil
	})
}
