package fontsource

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/sfnt"
)

// Extensions lists the file extensions treated as fonts.
var Extensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
	".otc": true,
}

// IsFontFile reports whether name has a font extension.
func IsFontFile(name string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	return Extensions[strings.ToLower(name[i:])]
}

// ParseEntries reads every face of a font file or collection.
// Faces without a family name are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	var (
		buf     sfnt.Buffer
		entries []Entry
	)
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			return nil, fmt.Errorf("parse face %d: %w", i, err)
		}

		family := name(f, &buf, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
		if family == "" {
			continue
		}
		style := name(f, &buf, sfnt.NameIDTypographicSubfamily, sfnt.NameIDSubfamily)
		if style == "" {
			style = "Regular"
		}
		postscript := name(f, &buf, sfnt.NameIDPostScript)
		if postscript == "" {
			postscript = strings.ReplaceAll(family+"-"+style, " ", "")
		}

		entries = append(entries, Entry{
			Postscript: postscript,
			Family:     family,
			ID:         postscript,
			Style:      style,
			Weight:     WeightFromStyle(style),
			Stretch:    StretchFromStyle(style),
			Italic:     ItalicFromStyle(style),
		})
	}
	return entries, nil
}

// name returns the first non-empty name record among ids.
func name(f *sfnt.Font, buf *sfnt.Buffer, ids ...sfnt.NameID) string {
	for _, id := range ids {
		s, err := f.Name(buf, id)
		if err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Longest keywords first so "extrabold" is not read as "bold".
var weightKeywords = []struct {
	keyword string
	weight  int
}{
	{"extralight", 200},
	{"ultralight", 200},
	{"extrabold", 800},
	{"ultrabold", 800},
	{"semibold", 600},
	{"demibold", 600},
	{"hairline", 100},
	{"regular", 400},
	{"medium", 500},
	{"normal", 400},
	{"black", 900},
	{"heavy", 900},
	{"light", 300},
	{"thin", 100},
	{"book", 400},
	{"bold", 700},
}

// WeightFromStyle maps a style name to a CSS weight, 400 when unknown.
func WeightFromStyle(style string) int {
	s := compact(style)
	for _, k := range weightKeywords {
		if strings.Contains(s, k.keyword) {
			return k.weight
		}
	}
	return 400
}

var stretchKeywords = []struct {
	keyword string
	stretch int
}{
	{"ultracondensed", 1},
	{"extracondensed", 2},
	{"semicondensed", 4},
	{"ultraexpanded", 9},
	{"extraexpanded", 8},
	{"semiexpanded", 6},
	{"condensed", 3},
	{"narrow", 3},
	{"expanded", 7},
	{"extended", 7},
	{"wide", 7},
}

// StretchFromStyle maps a style name to the 1-9 width class, 5 when normal.
func StretchFromStyle(style string) int {
	s := compact(style)
	for _, k := range stretchKeywords {
		if strings.Contains(s, k.keyword) {
			return k.stretch
		}
	}
	return 5
}

// ItalicFromStyle reports whether the style is italic or oblique.
func ItalicFromStyle(style string) bool {
	s := compact(style)
	return strings.Contains(s, "italic") || strings.Contains(s, "oblique")
}

func compact(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
