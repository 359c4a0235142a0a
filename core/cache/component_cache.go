package cache

import (
	"crypto/md5"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tristendillon/iconforge/core/logger"
	"github.com/tristendillon/iconforge/core/models"
)

// ComponentEntry remembers the component generated from one source file.
type ComponentEntry struct {
	SourcePath  string
	ContentHash string
	Component   *models.GeneratedComponent
	CreatedAt   time.Time
}

// ComponentCache maps source paths to the component last generated from
// them. An entry is only a hit while the source content hash is unchanged.
type ComponentCache struct {
	entries *lru.Cache[string, *ComponentEntry]
	config  *CacheConfig
	metrics CacheMetrics
	mutex   sync.Mutex
}

func NewComponentCache(config *CacheConfig) (*ComponentCache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	cc := &ComponentCache{config: config}
	entries, err := lru.NewWithEvict[string, *ComponentEntry](config.MaxEntries, func(path string, _ *ComponentEntry) {
		cc.metrics.Invalidations++
		logger.Debug("Evicted cache entry: %s", path)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create component cache: %w", err)
	}
	cc.entries = entries

	logger.Debug("Created component cache with MaxEntries=%d", config.MaxEntries)
	return cc, nil
}

func HashContent(content string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(content)))
}

// Get returns the cached component for sourcePath if contentHash matches.
func (cc *ComponentCache) Get(sourcePath, contentHash string) (*models.GeneratedComponent, bool) {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	entry, ok := cc.entries.Get(sourcePath)
	if !ok {
		cc.miss()
		logger.Debug("Cache miss for %s - entry not found", sourcePath)
		return nil, false
	}

	if entry.ContentHash != contentHash {
		cc.entries.Remove(sourcePath)
		cc.miss()
		logger.Debug("Cache miss for %s - content changed", sourcePath)
		return nil, false
	}

	cc.hit()
	logger.Debug("Cache hit for %s", sourcePath)
	return entry.Component, true
}

func (cc *ComponentCache) Set(sourcePath, contentHash string, component *models.GeneratedComponent) {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	cc.entries.Add(sourcePath, &ComponentEntry{
		SourcePath:  sourcePath,
		ContentHash: contentHash,
		Component:   component,
		CreatedAt:   time.Now(),
	})
}

func (cc *ComponentCache) InvalidateFile(sourcePath string) {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	if cc.entries.Remove(sourcePath) {
		logger.Debug("Invalidated cache entry for %s", sourcePath)
	}
}

func (cc *ComponentCache) Clear() {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	count := cc.entries.Len()
	cc.entries.Purge()
	logger.Debug("Cleared component cache, invalidated %d entries", count)
}

func (cc *ComponentCache) Len() int {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()
	return cc.entries.Len()
}

func (cc *ComponentCache) GetMetrics() CacheMetrics {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	metrics := cc.metrics
	metrics.TotalEntries = cc.entries.Len()
	metrics.CalculateHitRate()
	return metrics
}

func (cc *ComponentCache) LogStats() {
	if !cc.config.EnableMetrics {
		return
	}
	m := cc.GetMetrics()
	logger.Debug("Cache stats: Hits=%d, Misses=%d, Hit Rate=%.1f%%, Total Entries=%d, Invalidations=%d",
		m.Hits, m.Misses, m.HitRate, m.TotalEntries, m.Invalidations)
}

func (cc *ComponentCache) hit() {
	cc.metrics.Hits++
}

func (cc *ComponentCache) miss() {
	cc.metrics.Misses++
}
