package morph

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morispolanco/subjuntivo-buscador/resources"
	"github.com/morispolanco/subjuntivo-buscador/types"
)

func builtinLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex, err := Builtin()
	require.NoError(t, err)
	return lex
}

func paradigmTexts(t *testing.T, v Verb) map[string]bool {
	forms, err := v.Paradigm()
	require.NoError(t, err)
	result := make(map[string]bool, len(forms))
	for _, f := range forms {
		result[f.Text] = true
	}
	return result
}

func TestParadigm(t *testing.T) {
	tests := []struct {
		verb Verb
		want []string
	}{
		{Verb{Lemma: "hablar"}, []string{"hable", "hables", "hablemos", "habléis", "hablen", "hablara", "habláramos", "hablase", "hablásemos", "hablare", "habláremos"}},
		{Verb{Lemma: "comer"}, []string{"coma", "comamos", "comáis", "comiera", "comiéramos", "comiese", "comiere"}},
		{Verb{Lemma: "buscar"}, []string{"busque", "busquemos", "buscara"}},
		{Verb{Lemma: "llegar"}, []string{"llegue", "lleguen"}},
		{Verb{Lemma: "averiguar"}, []string{"averigüe"}},
		{Verb{Lemma: "conocer"}, []string{"conozca", "conociera"}},
		{Verb{Lemma: "vencer"}, []string{"venza"}},
		{Verb{Lemma: "coger"}, []string{"coja"}},
		{Verb{Lemma: "distinguir"}, []string{"distinga", "distinguiera"}},
		{Verb{Lemma: "construir"}, []string{"construya", "construyera"}},
		{Verb{Lemma: "leer"}, []string{"lea", "leyera", "leyésemos"}},
		{Verb{Lemma: "querer", PresentStem: "quier", PresentPluralStem: "quer", PreteriteStem: "quisie"}, []string{"quiera", "queramos", "quisiera", "quisiéramos"}},
		{Verb{Lemma: "venir", PresentStem: "veng", PreteriteStem: "vinie"}, []string{"vengas", "vengamos", "viniera"}},
		{Verb{Lemma: "ser", PresentStem: "se", PreteriteStem: "fue"}, []string{"sea", "seamos", "fuera", "fuéramos", "fuese"}},
		{Verb{Lemma: "ir", PresentStem: "vay", PreteriteStem: "fue"}, []string{"vaya", "vayamos", "fueras", "fuésemos"}},
	}
	for _, tt := range tests {
		t.Run(tt.verb.Lemma, func(t *testing.T) {
			got := paradigmTexts(t, tt.verb)
			for _, w := range tt.want {
				assert.True(t, got[w], w)
			}
		})
	}
}

func TestParadigmSize(t *testing.T) {
	forms, err := Verb{Lemma: "cantar"}.Paradigm()
	require.NoError(t, err)
	require.Len(t, forms, 24)

	_, err = Verb{Lemma: "casa"}.Paradigm()
	require.Error(t, err)

	_, err = Verb{Lemma: "r"}.Paradigm()
	require.Error(t, err)
}

func TestParadigmOverrides(t *testing.T) {
	got := paradigmTexts(t, Verb{Lemma: "estar", PreteriteStem: "estuvie", Overrides: present("esté", "estés", "esté", "estemos", "estéis", "estén")})
	assert.True(t, got["esté"])
	assert.True(t, got["estuviera"])
	assert.False(t, got["este"])
}

func TestPresentIndicative(t *testing.T) {
	forms := Verb{Lemma: "querer", PresentStem: "quier", PresentPluralStem: "quer"}.PresentIndicative()
	require.Len(t, forms, 6)
	assert.Equal(t, "quiere", forms[2].Text)
	assert.Equal(t, "queremos", forms[3].Text)

	assert.Nil(t, Verb{Lemma: "tener", PresentStem: "teng"}.PresentIndicative())
	assert.Equal(t, "vivimos", Verb{Lemma: "vivir"}.PresentIndicative()[3].Text)
}

func TestBuiltinLexicon(t *testing.T) {
	lex := builtinLexicon(t)
	require.Greater(t, lex.Size(), 50)
	_, ok := lex.Verb("ir")
	require.True(t, ok)

	analyses := lex.Subjunctive("vengas")
	require.Len(t, analyses, 1)
	assert.Equal(t, types.Analysis{
		POS:          types.POSVerb,
		Lemma:        "venir",
		Mood:         types.MoodSubjunctive,
		Tense:        types.TensePresent,
		PersonNumber: types.SecondSingular,
	}, analyses[0])

	assert.True(t, lex.IsIrregularForm("hayamos"))
	assert.True(t, lex.IsIrregularForm("quisiera"))
	assert.False(t, lex.IsIrregularForm("hablara"))

	// accent-folded second chance
	require.NotEmpty(t, lex.Subjunctive("esten"))
	assert.Equal(t, "estar", lex.Subjunctive("esten")[0].Lemma)

	pos, ok := lex.ClosedClass("entre")
	assert.True(t, ok)
	assert.Equal(t, types.POSAdp, pos)
	pos, ok = lex.ClosedClass("lugares")
	assert.True(t, ok)
	assert.Equal(t, types.POSNoun, pos)
}

func TestLoad(t *testing.T) {
	lex, err := Load(resources.Morphology())
	require.NoError(t, err)
	require.Greater(t, lex.Size(), builtinLexicon(t).Size())

	require.NotEmpty(t, lex.Subjunctive("hablemos"))
	require.NotEmpty(t, lex.Subjunctive("huela"))
	assert.Equal(t, "oler", lex.Subjunctive("huela")[0].Lemma)
	assert.Empty(t, lex.Subjunctive("prepara"))
	require.NotEmpty(t, lex.Forms("prepara"))
	assert.Equal(t, types.MoodIndicative, lex.Forms("prepara")[0].Mood)

	v, ok := lex.Verb("haber")
	require.True(t, ok)
	assert.True(t, v.Aux)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	require.Error(t, err)

	_, err = Load(fstest.MapFS{VerbsFile: {Data: []byte("# nothing\n")}})
	require.Error(t, err)

	_, err = Load(fstest.MapFS{
		VerbsFile: {Data: []byte("cantar\n")},
		FormsFile: {Data: []byte("cantar|cante|sometime|first_singular\n")},
	})
	require.Error(t, err)

	lex, err := Load(fstest.MapFS{VerbsFile: {Data: []byte("cantar\n")}})
	require.NoError(t, err)
	require.NotEmpty(t, lex.Subjunctive("cantemos"))
}

func TestPatternSet(t *testing.T) {
	p := DefaultPatternSet()

	assert.Equal(t, types.FirstPlural, p.PersonNumber("hayamos"))
	assert.Equal(t, types.SecondPlural, p.PersonNumber("fueseis"))
	assert.Equal(t, types.ThirdPlural, p.PersonNumber("hablaran"))
	assert.Equal(t, types.SecondSingular, p.PersonNumber("vengas"))
	assert.Equal(t, types.FirstSingular, p.PersonNumber("quisiera"))
	assert.Equal(t, types.PersonNumberUnknown, p.PersonNumber("sol"))

	assert.Equal(t, types.TenseImperfectPast, p.Tense("hablaran"))
	assert.Equal(t, types.TenseImperfectPast, p.Tense("comiésemos"))
	assert.Equal(t, types.TenseSimpleFuture, p.Tense("comieren"))
	assert.Equal(t, types.TensePresent, p.Tense("hablen"))
	assert.Equal(t, types.TenseUnknown, p.Tense("sol"))

	assert.True(t, p.Matches("fiesta", false))
	assert.False(t, p.Matches("fiesta", true))
	assert.True(t, p.Matches("cantaran", true))
	assert.False(t, p.Matches("cara", true))
	assert.False(t, p.Matches("día", false))
	assert.False(t, p.Matches("sol", false))
}

func TestPatternSetOrder(t *testing.T) {
	p := DefaultPatternSet()
	for i := 1; i < len(p.persons); i++ {
		assert.GreaterOrEqual(t, len([]rune(p.persons[i-1].suffix)), len([]rune(p.persons[i].suffix)))
	}
	require.Len(t, p.Groups(), 4)
	assert.Equal(t, "present", p.Groups()[0].Name)
	assert.True(t, p.Groups()[0].Ambiguous)
}

func tokens(words ...string) []types.Token {
	result := make([]types.Token, len(words))
	for i, w := range words {
		result[i] = types.Token{Span: types.Span{Text: w}, IsWord: true}
	}
	return result
}

func TestTagger(t *testing.T) {
	lex, err := Load(resources.Morphology())
	require.NoError(t, err)
	tagger := NewTagger(lex)

	toks := tokens("Espero", "que", "vengas", "a", "la", "fiesta")
	tagger.Tag(toks)

	assert.True(t, toks[0].IsTagged())
	assert.True(t, toks[1].HasPOS(types.POSSConj))
	require.NotEmpty(t, toks[2].VerbAnalyses(types.MoodSubjunctive))
	assert.Equal(t, "venir", toks[2].VerbAnalyses(types.MoodSubjunctive)[0].Lemma)
	assert.True(t, toks[4].HasPOS(types.POSDet))
	assert.True(t, toks[5].HasPOS(types.POSNoun))

	toks = tokens("Quisiera", "que", "hicieras", "el", "trabajo")
	tagger.Tag(toks)
	assert.Equal(t, "querer", toks[0].VerbAnalyses(types.MoodSubjunctive)[0].Lemma)
	assert.Equal(t, "hacer", toks[2].VerbAnalyses(types.MoodSubjunctive)[0].Lemma)
	assert.False(t, toks[4].IsVerbLike())
}

func TestResolver(t *testing.T) {
	lex, err := Load(resources.Morphology())
	require.NoError(t, err)
	tagger := NewTagger(lex)
	resolver := NewResolver(lex, DefaultPatternSet())

	toks := tokens("Quisiera", "que", "vengas", "y", "hayamos", "cantado")
	tagger.Tag(toks)

	assert.Equal(t, Attributes{Lemma: "querer", Tense: types.TenseImperfectPast, PersonNumber: types.FirstSingular}, resolver.Resolve(toks[0]))
	assert.Equal(t, Attributes{Lemma: "venir", Tense: types.TensePresent, PersonNumber: types.SecondSingular}, resolver.Resolve(toks[2]))
	assert.Equal(t, Attributes{Lemma: "haber", Tense: types.TensePresent, PersonNumber: types.FirstPlural}, resolver.Resolve(toks[4]))
}

func TestResolverWithoutAnalyses(t *testing.T) {
	resolver := NewResolver(builtinLexicon(t), DefaultPatternSet())

	// untagged tokens fall back to the lexicon, then to the ending tables
	assert.Equal(t, Attributes{Lemma: "tener", Tense: types.TensePresent, PersonNumber: types.SecondSingular},
		resolver.Resolve(types.Token{Span: types.Span{Text: "tengas"}, IsWord: true}))
	assert.Equal(t, Attributes{Lemma: "cantaran", Tense: types.TenseImperfectPast, PersonNumber: types.ThirdPlural},
		resolver.Resolve(types.Token{Span: types.Span{Text: "cantaran"}, IsWord: true}))
	assert.Equal(t, Attributes{Lemma: "xyz"},
		resolver.Resolve(types.Token{Span: types.Span{Text: "XYZ"}, IsWord: true}))
}

func TestNewLexiconRejectsBadVerb(t *testing.T) {
	_, err := NewLexicon([]Verb{{Lemma: "cantar"}, {Lemma: "casa"}})
	require.Error(t, err)
}
