package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tristendillon/iconforge/core/logger"
	"github.com/tristendillon/iconforge/core/models"
)

type IconWalker interface {
	Walk(root string) ([]models.SourceAsset, error)
}

type IconWalkerImpl struct {
	Extensions []string
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the walk root.
	Exclude []string
	// SkipDirs are absolute directories never descended into, such as an
	// output tree nested inside the input tree.
	SkipDirs []string
}

var defaultExclude = []string{"**/.git", "**/node_modules", "**/.DS_Store"}

func NewIconWalker(extensions, exclude []string, skipDirs ...string) *IconWalkerImpl {
	patterns := append(append([]string{}, defaultExclude...), exclude...)

	var abs []string
	for _, dir := range skipDirs {
		if a, err := filepath.Abs(dir); err == nil {
			abs = append(abs, a)
		}
	}

	return &IconWalkerImpl{
		Extensions: extensions,
		Exclude:    patterns,
		SkipDirs:   abs,
	}
}

// Walk returns every icon file under root, sorted by relative path, with its
// content loaded.
func (w *IconWalkerImpl) Walk(root string) ([]models.SourceAsset, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("input directory %s: %w", root, err)
	}

	var discovered []models.SourceAsset

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			if w.isSkippedDir(path) || w.isExcluded(relPath) {
				logger.Debug("Excluding directory: %s", relPath)
				return filepath.SkipDir
			}
			return nil
		}

		if !w.hasExtension(path) || w.isExcluded(relPath) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		discovered = append(discovered, models.SourceAsset{
			Path:    path,
			RelPath: relPath,
			Content: string(content),
		})
		logger.Debug("Discovered icon: %s", relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(discovered, func(i, j int) bool {
		return filepath.ToSlash(discovered[i].RelPath) < filepath.ToSlash(discovered[j].RelPath)
	})
	return discovered, nil
}

func (w *IconWalkerImpl) hasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range w.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

func (w *IconWalkerImpl) isExcluded(relPath string) bool {
	slashed := filepath.ToSlash(relPath)
	for _, pattern := range w.Exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

func (w *IconWalkerImpl) isSkippedDir(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.SkipDirs {
		if abs == dir {
			return true
		}
	}
	return false
}
