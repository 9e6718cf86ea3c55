package morph

import (
	"fmt"
	"strings"

	"github.com/morispolanco/subjuntivo-buscador/types"
)

type Conjugation int8

const (
	ConjugationUnknown Conjugation = iota
	ConjugationAr
	ConjugationEr
	ConjugationIr
)

func (c Conjugation) Name() string {
	switch c {
	case ConjugationAr:
		return "ar"
	case ConjugationEr:
		return "er"
	case ConjugationIr:
		return "ir"
	default:
		return "unknown"
	}
}

var persons = [...]types.PersonNumber{
	types.FirstSingular,
	types.SecondSingular,
	types.ThirdSingular,
	types.FirstPlural,
	types.SecondPlural,
	types.ThirdPlural,
}

var (
	presentEndingsAr = [...]string{"e", "es", "e", "emos", "éis", "en"}
	presentEndingsEr = [...]string{"a", "as", "a", "amos", "áis", "an"}
	imperfectRa      = [...]string{"ra", "ras", "ra", "ramos", "rais", "ran"}
	imperfectSe      = [...]string{"se", "ses", "se", "semos", "seis", "sen"}
	futureRe         = [...]string{"re", "res", "re", "remos", "reis", "ren"}
)

// Form is one inflected subjunctive form of a verb.
type Form struct {
	Text         string
	Tense        types.Tense
	PersonNumber types.PersonNumber
}

// Verb describes how to inflect one infinitive. Empty stems mean the regular stem is used.
// PresentPluralStem defaults to PresentStem, so only stem-changing verbs (quiera, queramos)
// need it.
type Verb struct {
	Lemma             string
	PresentStem       string
	PresentPluralStem string
	PreteriteStem     string
	Aux               bool
	Overrides         []Form
}

func (v Verb) IsIrregular() bool {
	return v.PresentStem != "" || v.PresentPluralStem != "" || v.PreteriteStem != "" || len(v.Overrides) > 0
}

func (v Verb) POS() types.POS {
	if v.Aux {
		return types.POSAux
	}
	return types.POSVerb
}

// Conjugation returns the class of the infinitive and its bare stem ("habl", "o" for oír).
func (v Verb) Conjugation() (Conjugation, string) {
	runes := []rune(strings.ToLower(v.Lemma))
	if len(runes) < 2 {
		return ConjugationUnknown, ""
	}
	stem := string(runes[:len(runes)-2])
	switch string(runes[len(runes)-2:]) {
	case "ar":
		return ConjugationAr, stem
	case "er":
		return ConjugationEr, stem
	case "ir", "ír":
		return ConjugationIr, stem
	}
	return ConjugationUnknown, ""
}

// Paradigm generates the 24 subjunctive forms: present, imperfect in -ra and -se, and future.
func (v Verb) Paradigm() ([]Form, error) {
	class, stem := v.Conjugation()
	if class == ConjugationUnknown {
		return nil, fmt.Errorf("%q is not an infinitive", v.Lemma)
	}

	present := v.PresentStem
	if present == "" {
		present = regularPresentStem(class, stem)
	}
	presentPlural := v.PresentPluralStem
	if presentPlural == "" {
		presentPlural = present
	}
	preterite := v.PreteriteStem
	if preterite == "" {
		preterite = regularPreteriteStem(class, stem)
	}

	endings := presentEndingsEr
	if class == ConjugationAr {
		endings = presentEndingsAr
	}

	forms := make([]Form, 0, 4*len(persons))
	for i, pn := range persons {
		s := present
		if pn == types.FirstPlural || pn == types.SecondPlural {
			s = presentPlural
		}
		forms = append(forms, Form{Text: s + endings[i], Tense: types.TensePresent, PersonNumber: pn})
	}
	for _, group := range []struct {
		tense   types.Tense
		endings [6]string
	}{
		{types.TenseImperfectPast, imperfectRa},
		{types.TenseImperfectPast, imperfectSe},
		{types.TenseSimpleFuture, futureRe},
	} {
		for i, pn := range persons {
			s := preterite
			if pn == types.FirstPlural {
				s = accentLast(preterite)
			}
			forms = append(forms, Form{Text: s + group.endings[i], Tense: group.tense, PersonNumber: pn})
		}
	}

	return applyOverrides(forms, v.Overrides), nil
}

// applyOverrides replaces every generated form in a slot named by an override. A slot may
// hold several forms, like the -ra and -se imperfects.
func applyOverrides(forms []Form, overrides []Form) []Form {
	if len(overrides) == 0 {
		return forms
	}
	type slot struct {
		tense types.Tense
		pn    types.PersonNumber
	}
	overridden := make(map[slot]bool, len(overrides))
	for _, o := range overrides {
		overridden[slot{o.Tense, o.PersonNumber}] = true
	}
	result := make([]Form, 0, len(forms)+len(overrides))
	for _, f := range forms {
		if !overridden[slot{f.Tense, f.PersonNumber}] {
			result = append(result, f)
		}
	}
	return append(result, overrides...)
}

// regularPresentStem applies the spelling changes that keep the stem's sound before the
// subjunctive vowel: busque, llegue, empiece, averigüe, coja, distinga, conozca, venza, construya.
func regularPresentStem(class Conjugation, stem string) string {
	if class == ConjugationAr {
		switch {
		case strings.HasSuffix(stem, "gu"):
			return strings.TrimSuffix(stem, "gu") + "gü"
		case strings.HasSuffix(stem, "c"):
			return strings.TrimSuffix(stem, "c") + "qu"
		case strings.HasSuffix(stem, "g"):
			return stem + "u"
		case strings.HasSuffix(stem, "z"):
			return strings.TrimSuffix(stem, "z") + "c"
		}
		return stem
	}

	switch {
	case strings.HasSuffix(stem, "gu"):
		return strings.TrimSuffix(stem, "u")
	case strings.HasSuffix(stem, "qu"):
		return strings.TrimSuffix(stem, "qu") + "c"
	case strings.HasSuffix(stem, "g"):
		return strings.TrimSuffix(stem, "g") + "j"
	case strings.HasSuffix(stem, "c"):
		runes := []rune(stem)
		if len(runes) > 1 && isVowel(runes[len(runes)-2]) {
			return strings.TrimSuffix(stem, "c") + "zc"
		}
		return strings.TrimSuffix(stem, "c") + "z"
	case class == ConjugationIr && strings.HasSuffix(stem, "u"):
		return stem + "y"
	}
	return stem
}

// regularPreteriteStem is the third person plural preterite without "ron": habla, comie, leye.
func regularPreteriteStem(class Conjugation, stem string) string {
	if class == ConjugationAr {
		return stem + "a"
	}
	runes := []rune(stem)
	if len(runes) > 0 && isVowel(runes[len(runes)-1]) &&
		!strings.HasSuffix(stem, "gu") && !strings.HasSuffix(stem, "qu") {
		return stem + "ye"
	}
	return stem + "ie"
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'á', 'é', 'í', 'ó', 'ú', 'ü':
		return true
	}
	return false
}

var acute = map[rune]rune{'a': 'á', 'e': 'é', 'i': 'í', 'o': 'ó', 'u': 'ú'}

// accentLast marks the stress of the first person plural: habláramos, comiésemos, fuéremos.
func accentLast(stem string) string {
	runes := []rune(stem)
	for i := len(runes) - 1; i >= 0; i-- {
		if accented, ok := acute[runes[i]]; ok {
			runes[i] = accented
			return string(runes)
		}
	}
	return stem
}

var (
	indicativeEndingsAr = [...]string{"o", "as", "a", "amos", "áis", "an"}
	indicativeEndingsEr = [...]string{"o", "es", "e", "emos", "éis", "en"}
	indicativeEndingsIr = [...]string{"o", "es", "e", "imos", "ís", "en"}
)

// PresentIndicative generates the present indicative for verbs whose indicative can be
// derived from the stems: regular verbs and stem-changing verbs (quiere, queremos). Verbs
// with an irregular first person (tengo, hago) return nil.
func (v Verb) PresentIndicative() []Form {
	if (v.PresentStem != "" && v.PresentPluralStem == "") || len(v.Overrides) > 0 {
		return nil
	}
	class, stem := v.Conjugation()
	var endings [6]string
	switch class {
	case ConjugationAr:
		endings = indicativeEndingsAr
	case ConjugationEr:
		endings = indicativeEndingsEr
	case ConjugationIr:
		endings = indicativeEndingsIr
	default:
		return nil
	}

	stressed := stem
	if v.PresentStem != "" {
		stressed = v.PresentStem
	}
	forms := make([]Form, 0, len(persons))
	for i, pn := range persons {
		s := stressed
		if pn == types.FirstPlural || pn == types.SecondPlural {
			s = stem
		}
		forms = append(forms, Form{Text: s + endings[i], Tense: types.TensePresent, PersonNumber: pn})
	}
	return forms
}
