package nlp

import (
	"iter"
	"strings"
	"unicode"

	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

const (
	period   = '.'
	ellipsis = '…'
	newline  = '\n'
)

var defaultAbbreviations = []string{
	"sr", "sra", "srta", "sres", "dr", "dra", "lic", "ing", "prof", "ud", "uds", "vd", "vds",
	"etc", "pág", "págs", "núm", "art", "cap", "vol", "ed", "av", "avda", "c", "cía", "dpto",
	"ee.uu", "aprox", "p.ej", "op", "cit", "fig", "tel",
}

func isTerminator(r rune) bool {
	return r == period || r == '!' || r == '?' || r == ellipsis
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', '»', ')', ']', '}':
		return true
	}
	return false
}

// Segmenter splits a document into sentences on terminal punctuation and blank lines.
// Inverted marks (¿ ¡) never end a sentence.
type Segmenter struct {
	abbreviations map[string]bool
}

func NewSegmenter(extraAbbreviations ...string) *Segmenter {
	abbr := make(map[string]bool, len(defaultAbbreviations)+len(extraAbbreviations))
	for _, a := range defaultAbbreviations {
		abbr[a] = true
	}
	for _, a := range extraAbbreviations {
		abbr[strings.Trim(strings.ToLower(a), ".")] = true
	}
	return &Segmenter{abbreviations: abbr}
}

// Sentences yields trimmed sentence spans with document rune offsets. Every range over
// the returned sequence scans doc again.
func (s *Segmenter) Sentences(doc []rune) iter.Seq[types.Sentence] {
	return func(yield func(types.Sentence) bool) {
		start := 0
		index := 0
		emit := func(begin, end int) bool {
			begin, end = utils.TrimSpaceRunes(doc, begin, end)
			if begin >= end || !hasWordRune(doc[begin:end]) {
				return true
			}
			sent := types.Sentence{
				Span: types.Span{
					Begin: begin,
					End:   end,
					Text:  string(doc[begin:end]),
				},
				Index: index,
			}
			index++
			return yield(sent)
		}

		for i := 0; i < len(doc); i++ {
			r := doc[i]
			if r == newline && isBlankLineAt(doc, i) {
				if !emit(start, i) {
					return
				}
				start = i + 1
				continue
			}
			if !isTerminator(r) || !s.isBoundary(doc, i) {
				continue
			}
			end := i + 1
			for end < len(doc) && (isTerminator(doc[end]) || isCloser(doc[end])) {
				end++
			}
			if !emit(start, end) {
				return
			}
			start = end
			i = end - 1
		}
		emit(start, len(doc))
	}
}

func (s *Segmenter) isBoundary(doc []rune, i int) bool {
	if doc[i] != period {
		return true
	}
	// decimal numbers
	if i > 0 && i+1 < len(doc) && unicode.IsDigit(doc[i-1]) && unicode.IsDigit(doc[i+1]) {
		return false
	}
	// "EE.UU." style abbreviations keep going while letters follow the period
	if i+1 < len(doc) && unicode.IsLetter(doc[i+1]) {
		return false
	}
	word := precedingWord(doc, i)
	if word == "" {
		return true
	}
	if s.abbreviations[strings.ToLower(word)] {
		return false
	}
	// initials such as "J. R. Jiménez"
	runes := []rune(word)
	if len(runes) == 1 && unicode.IsUpper(runes[0]) {
		return false
	}
	return true
}

func precedingWord(doc []rune, i int) string {
	begin := i
	for begin > 0 && (unicode.IsLetter(doc[begin-1]) || doc[begin-1] == period) {
		begin--
	}
	return strings.Trim(string(doc[begin:i]), ".")
}

func isBlankLineAt(doc []rune, i int) bool {
	for j := i + 1; j < len(doc); j++ {
		switch doc[j] {
		case newline:
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return false
}

func hasWordRune(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
