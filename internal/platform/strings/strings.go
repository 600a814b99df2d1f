// Package strings holds small string helpers used by route mounting and handlers
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalizes a mount path to a single leading slash and no trailing slash.
// It panics when nothing but slashes or spaces remain
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("mount prefix is required")
	}
	return s
}

// Deref returns the pointed-to string or ""
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// Lower trims and lowercases s, used for codes and hints
func Lower(s string) string { return std.ToLower(std.TrimSpace(s)) }

// IsTLD reports whether s is a top-level domain label, a leading dot allowed.
// Labels are 2 to 63 ASCII letters, or an IDNA "xn--" label of letters, digits and hyphens
func IsTLD(s string) bool {
	s = std.TrimPrefix(s, ".")
	if len(s) < 2 || len(s) > 63 {
		return false
	}
	if len(s) > 4 && std.EqualFold(s[:4], "xn--") {
		for i := 4; i < len(s); i++ {
			if c := s[i] | 0x20; (c < 'a' || c > 'z') && (s[i] < '0' || s[i] > '9') && s[i] != '-' {
				return false
			}
		}
		return s[len(s)-1] != '-'
	}
	for i := 0; i < len(s); i++ {
		if c := s[i] | 0x20; c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
