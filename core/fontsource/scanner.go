package fontsource

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// Scanner walks font directories and parses the files it finds.
// A Cache, when set, short-circuits parsing of files whose mtime is unchanged.
type Scanner struct {
	dirs   []string
	cache  Cache
	logger *zap.Logger
}

// NewScanner creates a scanner over dirs. cache may be nil.
func NewScanner(dirs []string, cache Cache, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{dirs: dirs, cache: cache, logger: logger}
}

// Fonts implements Source. Missing directories are skipped; unreadable or
// unparsable files are logged and skipped. Results are sorted by path.
func (s *Scanner) Fonts(ctx context.Context) ([]Font, error) {
	var fonts []Font
	seen := make(map[string]struct{})

	for _, dir := range s.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Missing or unreadable entries never fail the whole scan.
				if d != nil && d.IsDir() && path != dir {
					return filepath.SkipDir
				}
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() || !IsFontFile(d.Name()) {
				return nil
			}
			if _, dup := seen[path]; dup {
				return nil
			}
			seen[path] = struct{}{}

			font, ok := s.load(ctx, path)
			if ok {
				fonts = append(fonts, font)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(fonts, func(i, j int) bool { return fonts[i].Path < fonts[j].Path })
	return fonts, nil
}

func (s *Scanner) load(ctx context.Context, path string) (Font, bool) {
	info, err := os.Stat(path)
	if err != nil {
		s.logger.Debug("Skipping unreadable font", zap.String("path", path), zap.Error(err))
		return Font{}, false
	}
	modifiedAt := info.ModTime().Unix()
	if modifiedAt < 0 {
		modifiedAt = 0
	}

	if s.cache != nil {
		entries, ok, err := s.cache.Lookup(ctx, path, modifiedAt)
		if err != nil {
			s.logger.Warn("Font cache lookup failed", zap.String("path", path), zap.Error(err))
		} else if ok {
			return Font{Path: path, ModifiedAt: modifiedAt, Entries: entries}, true
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Debug("Skipping unreadable font", zap.String("path", path), zap.Error(err))
		return Font{}, false
	}
	entries, err := ParseEntries(data)
	if err != nil {
		s.logger.Debug("Skipping invalid font", zap.String("path", path), zap.Error(err))
		return Font{}, false
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, path, modifiedAt, entries); err != nil {
			s.logger.Warn("Font cache store failed", zap.String("path", path), zap.Error(err))
		}
	}
	return Font{Path: path, ModifiedAt: modifiedAt, Entries: entries}, true
}
