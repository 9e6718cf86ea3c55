package utils

import "unicode"

// IsWordRune reports whether r can be part of a Spanish word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func TrimSpaceRunes(runes []rune, begin int, end int) (int, int) {
	for begin < end && unicode.IsSpace(runes[begin]) {
		begin++
	}
	for end > begin && unicode.IsSpace(runes[end-1]) {
		end--
	}
	return begin, end
}
