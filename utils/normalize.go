package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NFC composes combining accents. The result is only safe for offset bookkeeping
// when IsSameLength holds.
func NFC(s string) string {
	return norm.NFC.String(s)
}

func IsSameLength(a, b string) bool {
	return utf8.RuneCountInString(a) == utf8.RuneCountInString(b)
}

// FoldAccents removes diacritics while keeping ñ, so "ojalá" and "ojala" share a key
// but "año" and "ano" do not.
func FoldAccents(s string) string {
	s = strings.ReplaceAll(s, "ñ", "\x00")
	s = strings.ReplaceAll(s, "Ñ", "\x01")
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ReplaceAll(folded, "\x00", "ñ")
	return strings.ReplaceAll(folded, "\x01", "Ñ")
}

// NormalizeWord strips non-word characters and lowercases, composing accents first.
func NormalizeWord(s string) string {
	s = norm.NFC.String(s)
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}
