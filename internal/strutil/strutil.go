// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package strutil holds string helpers shared by the text, chart, and
// HTML renderers.
package strutil

import "unicode/utf8"

const ellipsis = "..."

// Clip shortens s to at most max runes, ending it with "..." when cut.
// A max too small for the ellipsis cuts without one.
func Clip(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	if max <= len(ellipsis) {
		return string(r[:max])
	}
	return string(r[:max-len(ellipsis)]) + ellipsis
}

// Width returns the display width of s in runes, the unit fmt pads by.
func Width(s string) int {
	return utf8.RuneCountInString(s)
}
