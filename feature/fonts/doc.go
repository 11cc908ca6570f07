// Package fonts serves the endpoints the Figma desktop client polls for
// locally installed fonts: the font-files listing and raw font downloads.
package fonts
