package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/iconforge/core/models"
)

func TestComponentCacheHitAndMiss(t *testing.T) {
	cc, err := NewComponentCache(DefaultCacheConfig())
	require.NoError(t, err)

	comp := &models.GeneratedComponent{Identifier: "Home"}
	hash := HashContent("<svg></svg>")

	_, ok := cc.Get("home.svg", hash)
	assert.False(t, ok)

	cc.Set("home.svg", hash, comp)
	got, ok := cc.Get("home.svg", hash)
	require.True(t, ok)
	assert.Same(t, comp, got)

	_, ok = cc.Get("home.svg", HashContent("<svg><g/></svg>"))
	assert.False(t, ok, "changed content must miss")
	assert.Equal(t, 0, cc.Len(), "stale entry is dropped")

	m := cc.GetMetrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(2), m.Misses)
	assert.InDelta(t, 33.3, m.HitRate, 0.1)
}

func TestComponentCacheEvictsOldest(t *testing.T) {
	cc, err := NewComponentCache(&CacheConfig{MaxEntries: 2})
	require.NoError(t, err)

	cc.Set("a.svg", "1", &models.GeneratedComponent{Identifier: "A"})
	cc.Set("b.svg", "1", &models.GeneratedComponent{Identifier: "B"})
	cc.Set("c.svg", "1", &models.GeneratedComponent{Identifier: "C"})

	assert.Equal(t, 2, cc.Len())
	_, ok := cc.Get("a.svg", "1")
	assert.False(t, ok)
	assert.Equal(t, int64(1), cc.GetMetrics().Invalidations)
}

func TestComponentCacheInvalidateAndClear(t *testing.T) {
	cc, err := NewComponentCache(nil)
	require.NoError(t, err)

	cc.Set("a.svg", "1", &models.GeneratedComponent{})
	cc.Set("b.svg", "1", &models.GeneratedComponent{})

	cc.InvalidateFile("a.svg")
	assert.Equal(t, 1, cc.Len())

	cc.Clear()
	assert.Equal(t, 0, cc.Len())
}

func TestInvalidCacheSize(t *testing.T) {
	_, err := NewComponentCache(&CacheConfig{MaxEntries: 0})
	assert.Error(t, err)
}

func TestHashContentIsStable(t *testing.T) {
	assert.Equal(t, HashContent("x"), HashContent("x"))
	assert.NotEqual(t, HashContent("x"), HashContent("y"))
	assert.Len(t, HashContent(""), 32)
}
