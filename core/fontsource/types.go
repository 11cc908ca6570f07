package fontsource

import (
	"context"
	"errors"
)

// ErrNotIndexed is returned when a path is not part of the current font index.
var ErrNotIndexed = errors.New("font file is not indexed")

// Entry describes one face inside a font file. Collections carry several.
type Entry struct {
	Postscript string
	Family     string
	ID         string
	Style      string
	Weight     int
	Stretch    int
	Italic     bool
}

// Font is one font file on disk and the faces it contains.
type Font struct {
	Path       string
	ModifiedAt int64
	Entries    []Entry
}

// Source enumerates installed fonts.
type Source interface {
	Fonts(ctx context.Context) ([]Font, error)
}

// Cache remembers parsed entries per (path, modification time).
type Cache interface {
	Lookup(ctx context.Context, path string, modifiedAt int64) ([]Entry, bool, error)
	Store(ctx context.Context, path string, modifiedAt int64, entries []Entry) error
}
