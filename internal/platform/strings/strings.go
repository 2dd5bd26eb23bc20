// Package strings has the small string and slice helpers shared by modules
package strings

import (
	std "strings"
	"unicode/utf8"
)

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Or returns def when s is blank
func Or(s, def string) string {
	if std.TrimSpace(s) == "" {
		return def
	}
	return s
}

// MustString panics with "<name> is required" when s is blank
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// Prefix normalises a mount path to "/x/y" form; blank and "/" give ""
func Prefix(s string) string {
	s = std.Trim(std.TrimSpace(s), "/ ")
	if s == "" {
		return ""
	}
	return "/" + s
}

// MustPrefix is Prefix that panics on the root path
func MustPrefix(s string) string {
	p := Prefix(s)
	if p == "" {
		panic("root path is required")
	}
	return p
}

// Clip shortens s to at most n runes, appending "…" when cut
func Clip(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}

// SQLNull maps blank strings to a nil query argument
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}
