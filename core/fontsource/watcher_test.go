package fontsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestWatcher_InvalidatesOnChange(t *testing.T) {
	dir := t.TempDir()
	idx := NewIndex(NewScanner([]string{dir}, nil, nil), 0)

	fonts, err := idx.Fonts(context.Background())
	require.NoError(t, err)
	require.Empty(t, fonts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	w := NewWatcher(idx, []string{dir}, 10*time.Millisecond, nil)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before touching the directory.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Go-Regular.ttf"), goregular.TTF, 0o644))

	assert.Eventually(t, func() bool {
		fonts, err := idx.Fonts(context.Background())
		return err == nil && len(fonts) == 1
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
