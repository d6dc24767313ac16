package resolver

import "strings"

// icelandicTranslit folds Icelandic letters to ASCII for identifiers.
var icelandicTranslit = map[rune]string{
	'á': "a", 'é': "e", 'í': "i", 'ó': "o", 'ú': "u", 'ý': "y",
	'ð': "d", 'þ': "th", 'æ': "ae", 'ö': "o",
}

// Slugify produces a stable lowercase ASCII identifier from a store name.
// The same raw name always slugs to the same value, so repeated rows for one
// unknown store collapse to one temp ID within a parse.
func Slugify(name string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if t, ok := icelandicTranslit[r]; ok {
			b.WriteString(t)
			prevDash = false
			continue
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
