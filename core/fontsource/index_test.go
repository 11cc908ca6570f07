package fontsource

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls atomic.Int32
	delay time.Duration
	fonts []Font
	err   error
}

func (c *countingSource) Fonts(ctx context.Context) ([]Font, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	return c.fonts, c.err
}

func TestIndex_CachesUntilInvalidated(t *testing.T) {
	src := &countingSource{fonts: []Font{{Path: "/fonts/a.ttf"}}}
	idx := NewIndex(src, 0)

	for i := 0; i < 3; i++ {
		fonts, err := idx.Fonts(context.Background())
		require.NoError(t, err)
		assert.Len(t, fonts, 1)
	}
	assert.Equal(t, int32(1), src.calls.Load())

	idx.Invalidate()
	_, err := idx.Fonts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestIndex_TTL(t *testing.T) {
	src := &countingSource{}
	idx := NewIndex(src, 10*time.Millisecond)

	_, _ = idx.Fonts(context.Background())
	time.Sleep(20 * time.Millisecond)
	_, _ = idx.Fonts(context.Background())
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestIndex_SharesConcurrentBuild(t *testing.T) {
	src := &countingSource{delay: 50 * time.Millisecond}
	idx := NewIndex(src, 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := idx.Fonts(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestIndex_Error(t *testing.T) {
	src := &countingSource{err: assert.AnError}
	idx := NewIndex(src, 0)

	_, err := idx.Fonts(context.Background())
	assert.ErrorIs(t, err, assert.AnError)

	_, err = idx.Fonts(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(2), src.calls.Load(), "failed builds are not cached")
}

func TestIndex_Contains(t *testing.T) {
	idx := NewIndex(&countingSource{fonts: []Font{{Path: "/fonts/a.ttf"}}}, 0)

	ok, err := idx.Contains(context.Background(), "/fonts/a.ttf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = idx.Contains(context.Background(), "/etc/passwd")
	require.NoError(t, err)
	assert.False(t, ok)
}

// gatedSource blocks its first scan until release is closed. Each scan
// reports its ordinal in ModifiedAt.
type gatedSource struct {
	scans   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (g *gatedSource) Fonts(ctx context.Context) ([]Font, error) {
	n := g.scans.Add(1)
	if n == 1 {
		close(g.started)
		<-g.release
	}
	return []Font{{Path: "/fonts/a.ttf", ModifiedAt: int64(n)}}, nil
}

func TestIndex_InvalidateDuringScan(t *testing.T) {
	src := &gatedSource{started: make(chan struct{}), release: make(chan struct{})}
	idx := NewIndex(src, 0)

	type result struct {
		fonts []Font
		err   error
	}
	done := make(chan result, 1)
	go func() {
		fonts, err := idx.Fonts(context.Background())
		done <- result{fonts, err}
	}()

	<-src.started
	idx.Invalidate()
	close(src.release)

	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.fonts, 1)
	assert.Equal(t, int64(2), res.fonts[0].ModifiedAt, "the scan that raced Invalidate is not served")
	assert.Equal(t, int32(2), src.scans.Load())

	fonts, err := idx.Fonts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), fonts[0].ModifiedAt)
	assert.Equal(t, int32(2), src.scans.Load(), "the rescan is cached")
}
