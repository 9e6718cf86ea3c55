package tokenizer

import (
	"iter"
	"unicode"

	"github.com/morispolanco/subjuntivo-buscador/types"
)

const (
	apostrophe      = '\''
	rightQuote      = '’'
	hyphenOrMinus   = '-'
	decimalPoint    = '.'
	decimalComma    = ','
	combiningMarkLo = 0x0300
	combiningMarkHi = 0x036F
)

// Tokenizer splits a sentence into word and number tokens. Punctuation and symbols are
// dropped, since nothing downstream looks at them.
type Tokenizer struct{}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokens yields the tokens of sent with document rune offsets.
func (t *Tokenizer) Tokens(doc []rune, sent types.Sentence) iter.Seq[types.Token] {
	return func(yield func(types.Token) bool) {
		end := sent.End
		if end > len(doc) {
			end = len(doc)
		}
		for i := sent.Begin; i < end; {
			if !isTokenRune(doc[i]) {
				i++
				continue
			}
			begin := i
			letters, digits := 0, 0
			for i < end && isTokenPart(doc, i, end) {
				if unicode.IsLetter(doc[i]) {
					letters++
				} else if unicode.IsDigit(doc[i]) {
					digits++
				}
				i++
			}
			token := types.Token{
				Span: types.Span{
					Begin: begin,
					End:   i,
					Text:  string(doc[begin:i]),
				},
				Sentence: sent.Index,
				IsWord:   letters > 0,
				IsNumber: letters == 0 && digits > 0,
			}
			if !yield(token) {
				return
			}
		}
	}
}

// Collect materializes the tokens of one sentence.
func (t *Tokenizer) Collect(doc []rune, sent types.Sentence) []types.Token {
	var tokens []types.Token
	for token := range t.Tokens(doc, sent) {
		tokens = append(tokens, token)
	}
	return tokens
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isTokenPart(doc []rune, i int, end int) bool {
	r := doc[i]
	return isTokenRune(r) || isCombiningMark(r) || isJoiner(doc, i, end)
}

func isCombiningMark(r rune) bool {
	return (r >= combiningMarkLo && r <= combiningMarkHi) || unicode.Is(unicode.Mn, r)
}

// isJoiner reports whether the rune at i glues two halves of one token: "franco-alemán",
// "d'Ors", "3.5", "2,75".
func isJoiner(doc []rune, i int, end int) bool {
	if i == 0 || i+1 >= end {
		return false
	}
	prev, next := doc[i-1], doc[i+1]
	switch doc[i] {
	case hyphenOrMinus, apostrophe, rightQuote:
		return unicode.IsLetter(prev) && unicode.IsLetter(next)
	case decimalPoint, decimalComma:
		return unicode.IsDigit(prev) && unicode.IsDigit(next)
	}
	return false
}
