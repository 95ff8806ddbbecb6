package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Slugify turns a title into a lowercase, dash separated URL segment.
func Slugify(s string) string {
	var out strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			out.WriteRune(r)
			dash = false
		case out.Len() > 0 && !dash:
			out.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(out.String(), "-")
}

// SlugWithID appends the row id so slugs stay unique across equal titles.
func SlugWithID(title string, id int64) string {
	base := Slugify(title)
	if base == "" {
		return strconv.FormatInt(id, 10)
	}
	return base + "-" + strconv.FormatInt(id, 10)
}
