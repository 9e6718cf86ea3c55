package mood

import (
	"github.com/morispolanco/subjuntivo-buscador/morph"
	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

// Classifier decides whether a single token is a verb in the subjunctive mood.
type Classifier interface {
	IsSubjunctive(token types.Token) bool
}

// Pattern classifies from the surface form alone: irregular lexicon membership or a
// subjunctive ending. Short present endings also match indicative forms and nouns
// ("fiesta"), so this classifier trades precision for recall.
type Pattern struct {
	lexicon  *morph.Lexicon
	patterns *morph.PatternSet
}

func NewPattern(lexicon *morph.Lexicon, patterns *morph.PatternSet) *Pattern {
	return &Pattern{lexicon: lexicon, patterns: patterns}
}

func (c *Pattern) IsSubjunctive(token types.Token) bool {
	if !token.IsWord {
		return false
	}
	word := utils.NormalizeWord(token.Text)
	if word == "" {
		return false
	}
	if _, closed := c.lexicon.ClosedClass(word); closed {
		return false
	}
	if c.lexicon.IsIrregularForm(word) {
		return true
	}
	return c.patterns.Matches(word, false)
}

// Tagged trusts the tagger's mood readings and falls through to the pattern check for verbs
// without a subjunctive reading. Verbs read only as indicative or imperative reach the
// irregular forms alone; unknown words only reach the unambiguous endings.
type Tagged struct {
	patterns *morph.PatternSet
	fallback *Pattern
}

func NewTagged(patterns *morph.PatternSet, fallback *Pattern) *Tagged {
	return &Tagged{patterns: patterns, fallback: fallback}
}

func (c *Tagged) IsSubjunctive(token types.Token) bool {
	if !token.IsWord {
		return false
	}
	if !token.IsTagged() {
		return c.fallback.IsSubjunctive(token)
	}
	if len(token.VerbAnalyses(types.MoodSubjunctive)) > 0 {
		return true
	}

	word := utils.NormalizeWord(token.Text)
	if token.IsVerbLike() {
		for _, a := range token.VerbAnalyses(types.MoodNone) {
			if a.Mood == types.MoodNone {
				return c.patterns.Matches(word, false)
			}
		}
		// every reading carries a mood: only the irregular forms are checked again
		return c.fallback.lexicon.IsIrregularForm(word)
	}
	if token.IsKnown() {
		return false
	}
	return c.patterns.Matches(word, true)
}
