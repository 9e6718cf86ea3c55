package morph

import (
	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

// Tagger fills token analyses from a lexicon.
type Tagger struct {
	lexicon *Lexicon
}

func NewTagger(lexicon *Lexicon) *Tagger {
	return &Tagger{lexicon: lexicon}
}

// Tag annotates the tokens of one sentence in place. Words the lexicon does not know get an
// empty, non-nil analysis list. After a determiner, a word with no subjunctive reading is a
// noun ("el trabajo", "la fiesta"); subjunctive readings survive so "que la cantes" still
// holds a verb.
func (t *Tagger) Tag(tokens []types.Token) {
	for i := range tokens {
		tokens[i].Analyses = t.analyze(tokens[i])
	}

	for i := 1; i < len(tokens); i++ {
		token := &tokens[i]
		if !token.IsWord || !tokens[i-1].HasPOS(types.POSDet) {
			continue
		}
		if _, closed := t.lexicon.ClosedClass(utils.NormalizeWord(token.Text)); closed {
			continue
		}
		if len(token.VerbAnalyses(types.MoodSubjunctive)) > 0 {
			continue
		}
		token.Analyses = []types.Analysis{{POS: types.POSNoun, Lemma: utils.NormalizeWord(token.Text)}}
	}
}

func (t *Tagger) analyze(token types.Token) []types.Analysis {
	if !token.IsWord {
		return []types.Analysis{}
	}
	word := utils.NormalizeWord(token.Text)
	if pos, ok := t.lexicon.ClosedClass(word); ok {
		return []types.Analysis{{POS: pos, Lemma: word}}
	}
	forms := t.lexicon.Forms(word)
	result := make([]types.Analysis, len(forms))
	copy(result, forms)
	return result
}
