package fonts

import (
	"context"
	"fmt"
	"os"

	"font-helper/core/fontsource"

	"go.uber.org/zap"
)

// Catalog is the subset of fontsource.Index the service needs.
type Catalog interface {
	Fonts(ctx context.Context) ([]fontsource.Font, error)
	Contains(ctx context.Context, path string) (bool, error)
}

// Service answers font queries from the local index.
type Service struct {
	catalog Catalog
	logger  *zap.Logger
}

// NewService creates a new font service.
func NewService(catalog Catalog, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, logger: logger}
}

// FontFiles builds the font-files payload. Files without faces are omitted.
func (s *Service) FontFiles(ctx context.Context) (*FontFilesResponse, error) {
	fonts, err := s.catalog.Fonts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fonts: %w", err)
	}

	resp := &FontFilesResponse{
		Version:   PayloadVersion,
		FontFiles: make(map[string][]FontEntry, len(fonts)),
	}
	for _, font := range fonts {
		if len(font.Entries) == 0 {
			continue
		}
		entries := make([]FontEntry, 0, len(font.Entries))
		for _, e := range font.Entries {
			entries = append(entries, FontEntry{
				Postscript:    e.Postscript,
				Family:        e.Family,
				ID:            e.ID,
				Style:         e.Style,
				Weight:        e.Weight,
				Stretch:       e.Stretch,
				Italic:        e.Italic,
				ModifiedAt:    font.ModifiedAt,
				UserInstalled: true,
			})
		}
		resp.FontFiles[font.Path] = entries
	}
	return resp, nil
}

// ReadFile returns the contents of an indexed font file. Paths outside the
// index yield fontsource.ErrNotIndexed so arbitrary files cannot be read.
func (s *Service) ReadFile(ctx context.Context, path string) ([]byte, error) {
	ok, err := s.catalog.Contains(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("check index: %w", err)
	}
	if !ok {
		return nil, fontsource.ErrNotIndexed
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	return data, nil
}
