// Package fontsource discovers the fonts installed on the local machine.
//
// A Scanner walks the configured directories and parses every TrueType or
// OpenType file (and collection) it finds with golang.org/x/image/font/sfnt.
// Weight, width and slant are derived from the style name. Parsed entries can
// be persisted through a Cache keyed by path and modification time, so a
// rescan only parses files that changed.
//
// An Index keeps the last scan in memory and shares a single rebuild between
// concurrent callers. A Watcher invalidates the Index when fsnotify reports a
// change below any font directory.
package fontsource
