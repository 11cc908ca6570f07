// Package database persists the font index cache.
//
// It wraps GORM and supports two drivers: a local sqlite file (the default,
// suitable for a per-user helper) and MySQL for shared installations.
//
// # Font Cache
//
// FontCache implements fontsource.Cache. Rows are keyed by font path and file
// modification time, so a rescan only parses files whose mtime changed.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns compare the live table with the
// FontRecord model; the start command reports drift after migrating.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	cache := database.NewFontCache(db)
//	if err := cache.Migrate(); err != nil {
//	    return err
//	}
package database
