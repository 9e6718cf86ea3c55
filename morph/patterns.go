package morph

import (
	"slices"
	"unicode/utf8"

	"github.com/morispolanco/subjuntivo-buscador/types"
)

const DefaultMinStem = 3

// SuffixGroup is one family of subjunctive endings for both conjugation classes.
// Ambiguous groups overlap with indicative forms and nouns.
type SuffixGroup struct {
	Name      string
	Tense     types.Tense
	Ambiguous bool
	Suffixes  []string
}

type tenseRule struct {
	suffix string
	tense  types.Tense
}

type personRule struct {
	suffix string
	pn     types.PersonNumber
}

// PatternSet holds the ordered suffix groups and the person/number table. Both tables are
// sorted by descending suffix length so the longest ending wins; declared order is kept
// between endings of equal length.
type PatternSet struct {
	groups  []SuffixGroup
	tenses  []tenseRule
	persons []personRule
	minStem int
}

var defaultGroups = []SuffixGroup{
	{
		Name:      "present",
		Tense:     types.TensePresent,
		Ambiguous: true,
		Suffixes: []string{
			"e", "es", "emos", "éis", "en",
			"a", "as", "amos", "áis", "an",
		},
	},
	{
		Name:  "imperfect_ra",
		Tense: types.TenseImperfectPast,
		Suffixes: []string{
			"ara", "aras", "áramos", "arais", "aran",
			"iera", "ieras", "iéramos", "ierais", "ieran",
			"yera", "yeras", "yéramos", "yerais", "yeran",
		},
	},
	{
		Name:  "imperfect_se",
		Tense: types.TenseImperfectPast,
		Suffixes: []string{
			"ase", "ases", "ásemos", "aseis", "asen",
			"iese", "ieses", "iésemos", "ieseis", "iesen",
			"yese", "yeses", "yésemos", "yeseis", "yesen",
		},
	},
	{
		Name:  "future_re",
		Tense: types.TenseSimpleFuture,
		Suffixes: []string{
			"are", "ares", "áremos", "areis", "aren",
			"iere", "ieres", "iéremos", "iereis", "ieren",
			"yere", "yeres", "yéremos", "yereis", "yeren",
		},
	},
}

// defaultPersons is in declared order; "-a" and "-e" are read as first person singular
// although they are third person singular as often.
var defaultPersons = []personRule{
	{"ramos", types.FirstPlural}, {"semos", types.FirstPlural}, {"remos", types.FirstPlural},
	{"amos", types.FirstPlural}, {"emos", types.FirstPlural},
	{"rais", types.SecondPlural}, {"seis", types.SecondPlural}, {"reis", types.SecondPlural},
	{"áis", types.SecondPlural}, {"éis", types.SecondPlural}, {"ais", types.SecondPlural}, {"eis", types.SecondPlural},
	{"ran", types.ThirdPlural}, {"sen", types.ThirdPlural}, {"ren", types.ThirdPlural},
	{"an", types.ThirdPlural}, {"en", types.ThirdPlural},
	{"ras", types.SecondSingular}, {"ses", types.SecondSingular}, {"res", types.SecondSingular},
	{"as", types.SecondSingular}, {"es", types.SecondSingular},
	{"ra", types.FirstSingular}, {"se", types.FirstSingular}, {"re", types.FirstSingular},
	{"a", types.FirstSingular}, {"e", types.FirstSingular},
	{"a", types.ThirdSingular}, {"e", types.ThirdSingular},
}

func DefaultPatternSet() *PatternSet {
	return NewPatternSet(defaultGroups, DefaultMinStem)
}

func NewPatternSet(groups []SuffixGroup, minStem int) *PatternSet {
	p := &PatternSet{minStem: minStem}
	for _, g := range groups {
		g.Suffixes = slices.Clone(g.Suffixes)
		slices.SortStableFunc(g.Suffixes, byLength)
		p.groups = append(p.groups, g)
		for _, s := range g.Suffixes {
			p.tenses = append(p.tenses, tenseRule{suffix: s, tense: g.Tense})
		}
	}
	slices.SortStableFunc(p.tenses, func(a, b tenseRule) int { return byLength(a.suffix, b.suffix) })

	p.persons = slices.Clone(defaultPersons)
	slices.SortStableFunc(p.persons, func(a, b personRule) int { return byLength(a.suffix, b.suffix) })
	return p
}

func byLength(a, b string) int {
	return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
}

func (p *PatternSet) Groups() []SuffixGroup {
	return p.groups
}

// Matches reports whether a normalized word ends in a subjunctive ending, trying the groups
// in order. With unambiguousOnly the ambiguous present group is skipped.
func (p *PatternSet) Matches(word string, unambiguousOnly bool) bool {
	for _, g := range p.groups {
		if unambiguousOnly && g.Ambiguous {
			continue
		}
		for _, s := range g.Suffixes {
			if hasSuffix(word, s, p.minStem) {
				return true
			}
		}
	}
	return false
}

// Tense returns the tense of the longest matching ending.
func (p *PatternSet) Tense(word string) types.Tense {
	for _, r := range p.tenses {
		if hasSuffix(word, r.suffix, 1) {
			return r.tense
		}
	}
	return types.TenseUnknown
}

// PersonNumber returns the person and number of the longest matching ending.
func (p *PatternSet) PersonNumber(word string) types.PersonNumber {
	for _, r := range p.persons {
		if hasSuffix(word, r.suffix, 1) {
			return r.pn
		}
	}
	return types.PersonNumberUnknown
}

// hasSuffix requires at least minStem runes before the ending.
func hasSuffix(word string, suffix string, minStem int) bool {
	if len(word) < len(suffix) || word[len(word)-len(suffix):] != suffix {
		return false
	}
	return utf8.RuneCountInString(word)-utf8.RuneCountInString(suffix) >= minStem
}
