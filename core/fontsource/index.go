package fontsource

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Index caches the result of a Source in memory and rebuilds it lazily.
// Concurrent callers during a rebuild share one scan.
type Index struct {
	source Source
	ttl    time.Duration

	mu    sync.RWMutex
	fonts []Font
	paths map[string]struct{}
	built time.Time
	valid bool
	// gen is bumped by Invalidate so a scan already in flight knows its
	// result may predate the change.
	gen uint64

	sf singleflight.Group
}

// NewIndex wraps source. A zero ttl keeps the index until Invalidate is called.
func NewIndex(source Source, ttl time.Duration) *Index {
	return &Index{source: source, ttl: ttl}
}

// maxRescans bounds how often Fonts rescans when invalidations keep racing
// the scan.
const maxRescans = 3

type scanResult struct {
	fonts []Font
	stale bool
}

// Fonts implements Source.
func (x *Index) Fonts(ctx context.Context) ([]Font, error) {
	x.mu.RLock()
	if x.fresh() {
		fonts := x.fonts
		x.mu.RUnlock()
		return fonts, nil
	}
	x.mu.RUnlock()

	var res scanResult
	for attempt := 0; attempt < maxRescans; attempt++ {
		v, err, _ := x.sf.Do("fonts", x.scan(ctx))
		if err != nil {
			return nil, err
		}
		res = v.(scanResult)
		if !res.stale {
			break
		}
	}
	// After maxRescans the last result is served but the index stays
	// invalid, so the next call scans again.
	return res.fonts, nil
}

func (x *Index) scan(ctx context.Context) func() (interface{}, error) {
	return func() (interface{}, error) {
		x.mu.RLock()
		gen := x.gen
		x.mu.RUnlock()

		fonts, err := x.source.Fonts(ctx)
		if err != nil {
			return nil, err
		}
		paths := make(map[string]struct{}, len(fonts))
		for _, f := range fonts {
			paths[f.Path] = struct{}{}
		}

		x.mu.Lock()
		defer x.mu.Unlock()
		x.fonts = fonts
		x.paths = paths
		x.built = time.Now()
		// An Invalidate during the scan keeps the index invalid.
		x.valid = x.gen == gen
		return scanResult{fonts: fonts, stale: !x.valid}, nil
	}
}

// Contains reports whether path is a font file in the index, building it if needed.
func (x *Index) Contains(ctx context.Context, path string) (bool, error) {
	if _, err := x.Fonts(ctx); err != nil {
		return false, err
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.paths[path]
	return ok, nil
}

// Invalidate forces the next call to rescan.
func (x *Index) Invalidate() {
	x.mu.Lock()
	x.gen++
	x.valid = false
	x.mu.Unlock()
}

func (x *Index) fresh() bool {
	if !x.valid {
		return false
	}
	return x.ttl == 0 || time.Since(x.built) < x.ttl
}
