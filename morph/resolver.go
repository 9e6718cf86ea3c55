package morph

import (
	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

type Attributes struct {
	Lemma        string
	Tense        types.Tense
	PersonNumber types.PersonNumber
}

// Resolver derives lemma, tense and person/number for a token already judged subjunctive.
// It never fails: unresolvable attributes come back as Unknown.
type Resolver struct {
	lexicon  *Lexicon
	patterns *PatternSet
}

func NewResolver(lexicon *Lexicon, patterns *PatternSet) *Resolver {
	return &Resolver{lexicon: lexicon, patterns: patterns}
}

func (r *Resolver) Resolve(token types.Token) Attributes {
	word := utils.NormalizeWord(token.Text)
	analyses := token.VerbAnalyses(types.MoodSubjunctive)
	if len(analyses) == 0 && r.lexicon != nil {
		analyses = r.lexicon.Subjunctive(word)
	}

	attrs := Attributes{Lemma: word}
	if len(analyses) > 0 && analyses[0].Lemma != "" {
		attrs.Lemma = analyses[0].Lemma
	}

	if tense, ok := unanimous(analyses, func(a types.Analysis) types.Tense { return a.Tense }); ok {
		attrs.Tense = tense
	} else if tense := r.patterns.Tense(word); tense != types.TenseUnknown {
		attrs.Tense = tense
	} else if len(analyses) > 0 {
		attrs.Tense = analyses[0].Tense
	}

	if pn, ok := unanimous(analyses, func(a types.Analysis) types.PersonNumber { return a.PersonNumber }); ok {
		attrs.PersonNumber = pn
	} else if pn := r.patterns.PersonNumber(word); pn != types.PersonNumberUnknown {
		attrs.PersonNumber = pn
	} else if len(analyses) > 0 {
		attrs.PersonNumber = analyses[0].PersonNumber
	}

	if attrs.Lemma == "" {
		attrs.Lemma = token.Lower()
	}
	return attrs
}

// unanimous returns the value all analyses agree on; zero values (Unknown) do not vote.
func unanimous[T comparable](analyses []types.Analysis, get func(types.Analysis) T) (T, bool) {
	var zero, value T
	found := false
	for _, a := range analyses {
		v := get(a)
		if v == zero {
			continue
		}
		if found && v != value {
			return zero, false
		}
		value, found = v, true
	}
	return value, found
}
