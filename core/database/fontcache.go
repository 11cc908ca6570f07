package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"font-helper/core/fontsource"

	"gorm.io/gorm"
)

// FontRecord is one parsed face of a font file, keyed by path and mtime.
// The lookup index covers a fixed width hash of the path so it stays within
// the MySQL InnoDB key limit of 3072 bytes.
type FontRecord struct {
	ID         uint   `gorm:"primaryKey"`
	PathHash   string `gorm:"size:64;index:idx_font_hash_mtime"`
	Path       string `gorm:"size:1024"`
	ModifiedAt int64  `gorm:"index:idx_font_hash_mtime"`
	EntryIndex int
	Postscript string `gorm:"size:255"`
	Family     string `gorm:"size:255"`
	FontID     string `gorm:"size:255"`
	Style      string `gorm:"size:255"`
	Weight     int
	Stretch    int
	Italic     bool
}

// TableName pins the table name independently of the naming strategy.
func (FontRecord) TableName() string {
	return "font_records"
}

// pathHash returns the hex SHA-256 of path.
func pathHash(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

// FontCache implements fontsource.Cache on top of GORM.
type FontCache struct {
	db *gorm.DB
}

var _ fontsource.Cache = (*FontCache)(nil)

// NewFontCache wraps db. Call Migrate once before first use.
func NewFontCache(db *gorm.DB) *FontCache {
	return &FontCache{db: db}
}

// Migrate creates or updates the font_records table.
func (c *FontCache) Migrate() error {
	if err := c.db.AutoMigrate(&FontRecord{}); err != nil {
		return fmt.Errorf("failed to migrate font cache: %w", err)
	}
	return nil
}

// Lookup returns the cached entries for path at modifiedAt.
// A file that parsed to zero faces is indistinguishable from a miss and is reparsed.
func (c *FontCache) Lookup(ctx context.Context, path string, modifiedAt int64) ([]fontsource.Entry, bool, error) {
	var records []FontRecord
	err := c.db.WithContext(ctx).
		Where("path_hash = ? AND modified_at = ? AND path = ?", pathHash(path), modifiedAt, path).
		Order("entry_index").
		Find(&records).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to query font cache: %w", err)
	}
	if len(records) == 0 {
		return nil, false, nil
	}

	entries := make([]fontsource.Entry, len(records))
	for i, r := range records {
		entries[i] = fontsource.Entry{
			Postscript: r.Postscript,
			Family:     r.Family,
			ID:         r.FontID,
			Style:      r.Style,
			Weight:     r.Weight,
			Stretch:    r.Stretch,
			Italic:     r.Italic,
		}
	}
	return entries, true, nil
}

// Store replaces every cached row of path with entries.
func (c *FontCache) Store(ctx context.Context, path string, modifiedAt int64, entries []fontsource.Entry) error {
	hash := pathHash(path)
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("path_hash = ? AND path = ?", hash, path).Delete(&FontRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear font cache: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}

		records := make([]FontRecord, len(entries))
		for i, e := range entries {
			records[i] = FontRecord{
				PathHash:   hash,
				Path:       path,
				ModifiedAt: modifiedAt,
				EntryIndex: i,
				Postscript: e.Postscript,
				Family:     e.Family,
				FontID:     e.ID,
				Style:      e.Style,
				Weight:     e.Weight,
				Stretch:    e.Stretch,
				Italic:     e.Italic,
			}
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to write font cache: %w", err)
		}
		return nil
	})
}

// Prune deletes rows for files that are no longer part of the index.
func (c *FontCache) Prune(ctx context.Context, keep []string) (int64, error) {
	q := c.db.WithContext(ctx)
	if len(keep) == 0 {
		q = q.Where("1 = 1")
	} else {
		q = q.Where("path NOT IN ?", keep)
	}
	res := q.Delete(&FontRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune font cache: %w", res.Error)
	}
	return res.RowsAffected, nil
}
