package clause

import (
	"strings"
	"unicode"

	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

const DefaultWindow = types.DefaultClauseWindow

type word struct {
	text  string
	begin int
}

// Extractor finds the approximate clause around a verb: from the closest preceding trigger
// ("que", "para que", "ojalá") to the next terminal punctuation. It is a heuristic, not a
// parser.
type Extractor struct {
	backward int
	forward  int
	// triggers are folded to lowercase without accents and split into words
	triggers [][]string
}

func NewExtractor(window types.ClauseWindow, extraTriggers ...string) *Extractor {
	if window.Backward <= 0 {
		window.Backward = DefaultWindow
	}
	if window.Forward <= 0 {
		window.Forward = DefaultWindow
	}
	e := &Extractor{backward: window.Backward, forward: window.Forward}
	seen := make(map[string]bool)
	for _, t := range append(getTriggers(), extraTriggers...) {
		phrase := strings.Fields(fold(t))
		key := strings.Join(phrase, " ")
		if len(phrase) == 0 || seen[key] {
			continue
		}
		seen[key] = true
		e.triggers = append(e.triggers, phrase)
	}
	return e
}

// Extract returns the trimmed clause containing doc[begin:end]. The result always contains
// the verb span.
func (e *Extractor) Extract(doc []rune, begin int, end int) types.Span {
	begin = utils.MaxInt(0, utils.MinInt(begin, len(doc)))
	end = utils.MaxInt(begin, utils.MinInt(end, len(doc)))

	clauseBegin := e.findBegin(doc, begin)
	clauseEnd := e.findEnd(doc, end)

	trimmedBegin, trimmedEnd := utils.TrimSpaceRunes(doc, clauseBegin, clauseEnd)
	// the verb stays inside the clause
	trimmedBegin = utils.MinInt(trimmedBegin, begin)
	trimmedEnd = utils.MaxInt(trimmedEnd, end)

	return types.Span{
		Begin: trimmedBegin,
		End:   trimmedEnd,
		Text:  string(doc[trimmedBegin:trimmedEnd]),
	}
}

func (e *Extractor) findBegin(doc []rune, begin int) int {
	lower := utils.MaxInt(0, begin-e.backward)
	for i := begin - 1; i >= lower; i-- {
		if isBackwardStop(doc[i]) && !isDecimalPoint(doc, i) {
			lower = i + 1
			break
		}
	}

	words := splitWords(doc, lower, begin)
	for i := len(words) - 1; i >= 0; i-- {
		if start, ok := e.triggerEndingAt(words, i); ok {
			return words[start].begin
		}
	}
	if len(words) > 0 {
		return words[0].begin
	}
	return lower
}

// triggerEndingAt returns the first word of the longest trigger phrase whose last word is words[i].
func (e *Extractor) triggerEndingAt(words []word, i int) (int, bool) {
	best := -1
	for _, phrase := range e.triggers {
		n := len(phrase)
		if n > i+1 || (best >= 0 && i-n+1 >= best) {
			continue
		}
		matched := true
		for k := 0; k < n; k++ {
			if words[i-n+1+k].text != phrase[k] {
				matched = false
				break
			}
		}
		if matched {
			best = i - n + 1
		}
	}
	return best, best >= 0
}

func (e *Extractor) findEnd(doc []rune, end int) int {
	upper := utils.MinInt(len(doc), end+e.forward)
	for i := end; i < upper; i++ {
		if isForwardStop(doc[i]) && !isDecimalPoint(doc, i) {
			return i + 1
		}
	}
	return upper
}

func splitWords(doc []rune, begin int, end int) []word {
	var words []word
	for i := begin; i < end; {
		if !utils.IsWordRune(doc[i]) {
			i++
			continue
		}
		start := i
		for i < end && (utils.IsWordRune(doc[i]) || unicode.Is(unicode.Mn, doc[i])) {
			i++
		}
		// a word cut by the window start is not a whole word
		if start == begin && start > 0 && utils.IsWordRune(doc[start-1]) {
			continue
		}
		words = append(words, word{text: fold(string(doc[start:i])), begin: start})
	}
	return words
}

func fold(s string) string {
	return utils.FoldAccents(strings.ToLower(utils.NFC(s)))
}

func isDecimalPoint(doc []rune, i int) bool {
	return (doc[i] == '.') && i > 0 && i+1 < len(doc) && unicode.IsDigit(doc[i-1]) && unicode.IsDigit(doc[i+1])
}
