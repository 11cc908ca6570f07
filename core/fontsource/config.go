package fontsource

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds configuration for local font discovery.
type Config struct {
	// Dirs are the directories scanned recursively for font files.
	Dirs []string `mapstructure:"dirs" default:"/usr/share/fonts,/usr/local/share/fonts,~/.local/share/fonts,~/.fonts"`
	// LibraryDir receives fonts synced from the remote library and is scanned too.
	LibraryDir string `mapstructure:"library_dir" default:"~/.local/share/fonts/font-helper"`
	// Watch invalidates the index whenever a font directory changes.
	Watch bool `mapstructure:"watch" default:"true"`
	// WatchDebounce coalesces bursts of file events into one invalidation.
	WatchDebounce time.Duration `mapstructure:"watch_debounce" default:"500ms"`
}

// Directories returns the expanded, de-duplicated list of directories to scan.
func (c Config) Directories() []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(dir string) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		dir = filepath.Clean(ExpandHome(dir))
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}

	for _, d := range c.Dirs {
		add(d)
	}
	add(c.LibraryDir)

	return out
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
