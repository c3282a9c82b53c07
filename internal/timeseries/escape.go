package timeseries

import "strings"

// Escape sanitizes an untrusted string for embedding between single quotes
// in query text. Backslashes must be escaped before quotes: otherwise a
// value ending in `\` would neutralize the closing quote the builder adds
// around it. NUL bytes are stripped entirely.
//
// This is the single audited interpolation point for the whole subsystem.
// Untrusted strings (event names, search strings, UTM values) may only
// enter query text through the Cond constructors in query.go, all of which
// call Escape. Numeric and identifier inputs are validated against
// allow-lists instead and are never escaped-and-trusted as strings.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}
