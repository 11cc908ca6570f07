package fontsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]Entry
	lookups int
	stores  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]Entry)}
}

func cacheKey(path string, modifiedAt int64) string {
	return fmt.Sprintf("%s@%d", path, modifiedAt)
}

func (m *memoryCache) Lookup(_ context.Context, path string, modifiedAt int64) ([]Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	e, ok := m.entries[cacheKey(path, modifiedAt)]
	return e, ok, nil
}

func (m *memoryCache) Store(_ context.Context, path string, modifiedAt int64, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores++
	m.entries[cacheKey(path, modifiedAt)] = entries
	return nil
}

func writeFonts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "go"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go", "Go-Regular.ttf"), goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Go-Bold.ttf"), gobold.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.otf"), []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))
	return dir
}

func TestScanner_Fonts(t *testing.T) {
	dir := writeFonts(t)

	s := NewScanner([]string{dir, filepath.Join(dir, "missing"), dir}, nil, nil)
	fonts, err := s.Fonts(context.Background())
	require.NoError(t, err)

	require.Len(t, fonts, 2)
	assert.Equal(t, filepath.Join(dir, "Go-Bold.ttf"), fonts[0].Path)
	assert.Equal(t, filepath.Join(dir, "go", "Go-Regular.ttf"), fonts[1].Path)
	assert.Equal(t, 700, fonts[0].Entries[0].Weight)
	assert.Positive(t, fonts[0].ModifiedAt)
}

func TestScanner_UsesCache(t *testing.T) {
	dir := writeFonts(t)
	cache := newMemoryCache()
	s := NewScanner([]string{dir}, cache, nil)

	_, err := s.Fonts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cache.stores)

	fonts, err := s.Fonts(context.Background())
	require.NoError(t, err)
	assert.Len(t, fonts, 2)
	assert.Equal(t, 2, cache.stores, "unchanged files must come from the cache")
	assert.Equal(t, 6, cache.lookups)
}

func TestScanner_Cancelled(t *testing.T) {
	dir := writeFonts(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner([]string{dir}, nil, nil).Fonts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
