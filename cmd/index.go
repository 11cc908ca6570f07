package cmd

import (
	"font-helper/core/config"
	"font-helper/core/database"
	"font-helper/core/fontsource"

	"go.uber.org/zap"
)

// fontStack is the font index plus its optional database cache.
type fontStack struct {
	index *fontsource.Index
	cache *database.FontCache
	close func()
}

// openFonts builds the font index. A database failure only disables the
// metadata cache; fonts are then parsed on every rebuild.
func openFonts(cfg *config.Config, logg *zap.Logger) *fontStack {
	stack := &fontStack{close: func() {}}

	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Font cache database unavailable, parsing every file", zap.Error(err))
		} else {
			if sqlDB, err := db.DB(); err == nil {
				stack.close = func() { _ = sqlDB.Close() }
			}
			fc := database.NewFontCache(db)
			if err := fc.Migrate(); err != nil {
				logg.Warn("Font cache migration failed, cache disabled", zap.Error(err))
			} else {
				if missing, err := database.MissingColumns(db); err != nil {
					logg.Warn("Could not inspect font cache schema", zap.Error(err))
				} else if len(missing) > 0 {
					logg.Warn("Font cache schema is missing columns", zap.Strings("columns", missing))
				}
				stack.cache = fc
				logg.Info("Font cache ready", zap.String("driver", cfg.Database.Driver))
			}
		}
	}

	var cache fontsource.Cache
	if stack.cache != nil {
		cache = stack.cache
	}
	dirs := cfg.Fonts.Directories()
	logg.Debug("Font directories", zap.Strings("dirs", dirs))
	stack.index = fontsource.NewIndex(fontsource.NewScanner(dirs, cache, logg), 0)
	return stack
}
