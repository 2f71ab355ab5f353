// Package slug derives URL-safe slugs from Turkish article titles.
package slug

import "strings"

// turkishFold maps Turkish letters onto ASCII. Generic Unicode normalization
// does not fold the dotless ı / dotted İ pair correctly, so the table is
// explicit.
var turkishFold = map[rune]rune{
	'ç': 'c', 'ğ': 'g', 'ı': 'i', 'ö': 'o', 'ş': 's', 'ü': 'u',
	'Ç': 'c', 'Ğ': 'g', 'İ': 'i', 'Ö': 'o', 'Ş': 's', 'Ü': 'u',
}

const (
	maxLen   = 100
	fallback = "haber"
)

// Make returns a lowercase hyphenated slug for title: Turkish letters folded,
// non-alphanumeric runs collapsed to a single hyphen, capped at 100 chars.
// An empty or fully non-alphanumeric title yields "haber".
func Make(title string) string {
	if title == "" {
		return fallback
	}

	var b strings.Builder
	b.Grow(len(title))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range title {
		if folded, ok := turkishFold[r]; ok {
			r = folded
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	s := strings.Trim(b.String(), "-")
	if len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-")
	}
	if s == "" {
		return fallback
	}
	return s
}
