package morph

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/morispolanco/subjuntivo-buscador/logger"
	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

const (
	VerbsFile = "verbs.bsv"
	FormsFile = "forms.bsv"

	auxFlag = "aux"
)

// Lexicon maps word forms to their morphological readings. It is read-only once built and
// safe for concurrent use.
type Lexicon struct {
	verbs     map[string]Verb
	forms     map[string][]types.Analysis
	folded    map[string][]types.Analysis
	irregular map[string]bool
	closed    map[string]types.POS
	nonVerbs  map[string]bool
}

// NewLexicon generates the paradigm of every verb. A lemma listed twice keeps its first entry.
func NewLexicon(verbs []Verb) (*Lexicon, error) {
	lex := &Lexicon{
		verbs:     make(map[string]Verb, len(verbs)),
		forms:     make(map[string][]types.Analysis),
		folded:    make(map[string][]types.Analysis),
		irregular: make(map[string]bool),
		closed:    closedClassWords,
		nonVerbs:  nonVerbs,
	}
	for _, v := range verbs {
		if err := lex.addVerb(v); err != nil {
			return nil, err
		}
	}
	return lex, nil
}

var builtin = sync.OnceValues(func() (*Lexicon, error) {
	return NewLexicon(irregularVerbs)
})

// Builtin returns the compiled-in irregular-verb lexicon.
func Builtin() (*Lexicon, error) {
	lex, err := builtin()
	if err != nil {
		return nil, fmt.Errorf("builtin lexicon: %w", err)
	}
	return lex, nil
}

// Load builds the tagger lexicon: the irregular verbs plus the verb table and override forms
// found in fsys.
func Load(fsys fs.FS) (*Lexicon, error) {
	log := logger.NewLogger("morph")

	rows, err := utils.ReadBSV(fsys, VerbsFile, 1, utils.HashFirstColumn)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", VerbsFile, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no verbs", VerbsFile)
	}

	overrides, err := readOverrides(fsys)
	if err != nil {
		return nil, err
	}

	verbs := make([]Verb, 0, len(irregularVerbs)+len(rows))
	for _, v := range irregularVerbs {
		if extra, ok := overrides[v.Lemma]; ok {
			v.Overrides = append(append([]Form{}, v.Overrides...), extra...)
		}
		verbs = append(verbs, v)
	}
	for _, row := range rows {
		v := Verb{
			Lemma:             strings.ToLower(row[0]),
			PresentStem:       column(row, 1),
			PresentPluralStem: column(row, 2),
			PreteriteStem:     column(row, 3),
			Aux:               strings.Contains(column(row, 4), auxFlag),
			Overrides:         overrides[strings.ToLower(row[0])],
		}
		verbs = append(verbs, v)
	}

	lex, err := NewLexicon(verbs)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("verbs", len(lex.verbs)).Int("forms", len(lex.forms)).Msg("lexicon loaded")
	return lex, nil
}

func readOverrides(fsys fs.FS) (map[string][]Form, error) {
	rows, err := utils.ReadBSV(fsys, FormsFile, 4, nil)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FormsFile, err)
	}

	result := make(map[string][]Form)
	for _, row := range rows {
		var tense types.Tense
		if err := tense.UnmarshalText([]byte(row[2])); err != nil {
			return nil, fmt.Errorf("%s: %w", FormsFile, err)
		}
		var pn types.PersonNumber
		if err := pn.UnmarshalText([]byte(row[3])); err != nil {
			return nil, fmt.Errorf("%s: %w", FormsFile, err)
		}
		lemma := strings.ToLower(row[0])
		result[lemma] = append(result[lemma], Form{Text: strings.ToLower(row[1]), Tense: tense, PersonNumber: pn})
	}
	return result, nil
}

func column(row []string, i int) string {
	if i < len(row) {
		return strings.ToLower(row[i])
	}
	return ""
}

func (lex *Lexicon) addVerb(v Verb) error {
	v.Lemma = utils.NFC(v.Lemma)
	if _, ok := lex.verbs[v.Lemma]; ok {
		return nil
	}
	paradigm, err := v.Paradigm()
	if err != nil {
		return err
	}
	lex.verbs[v.Lemma] = v

	pos := v.POS()
	lex.add(v.Lemma, types.Analysis{POS: pos, Lemma: v.Lemma})
	for _, f := range paradigm {
		lex.add(f.Text, types.Analysis{
			POS:          pos,
			Lemma:        v.Lemma,
			Mood:         types.MoodSubjunctive,
			Tense:        f.Tense,
			PersonNumber: f.PersonNumber,
		})
		if v.IsIrregular() {
			lex.irregular[utils.NFC(f.Text)] = true
		}
	}
	for _, f := range v.PresentIndicative() {
		lex.add(f.Text, types.Analysis{
			POS:          pos,
			Lemma:        v.Lemma,
			Mood:         types.MoodIndicative,
			Tense:        f.Tense,
			PersonNumber: f.PersonNumber,
		})
	}
	return nil
}

func (lex *Lexicon) add(form string, a types.Analysis) {
	form = utils.NFC(form)
	lex.forms[form] = appendUnique(lex.forms[form], a)
	folded := utils.FoldAccents(form)
	lex.folded[folded] = appendUnique(lex.folded[folded], a)
}

func appendUnique(analyses []types.Analysis, a types.Analysis) []types.Analysis {
	for _, existing := range analyses {
		if existing == a {
			return analyses
		}
	}
	return append(analyses, a)
}

// ClosedClass reports the part of speech of function words and of the nouns that collide
// with verb endings.
func (lex *Lexicon) ClosedClass(word string) (types.POS, bool) {
	if pos, ok := lex.closed[word]; ok {
		return pos, true
	}
	if lex.nonVerbs[word] {
		return types.POSNoun, true
	}
	return types.POSUnknown, false
}

// Forms returns the verbal readings of a normalized word, retrying without accents.
// The result must not be modified.
func (lex *Lexicon) Forms(word string) []types.Analysis {
	if analyses, ok := lex.forms[word]; ok {
		return analyses
	}
	return lex.folded[utils.FoldAccents(word)]
}

func (lex *Lexicon) Subjunctive(word string) []types.Analysis {
	var result []types.Analysis
	for _, a := range lex.Forms(word) {
		if a.Mood == types.MoodSubjunctive {
			result = append(result, a)
		}
	}
	return result
}

// IsIrregularForm reports whether word is a subjunctive form of an irregular verb.
func (lex *Lexicon) IsIrregularForm(word string) bool {
	return lex.irregular[word]
}

func (lex *Lexicon) Verb(lemma string) (Verb, bool) {
	v, ok := lex.verbs[lemma]
	return v, ok
}

func (lex *Lexicon) Size() int {
	return len(lex.verbs)
}
