package types

const MoodSubjunctiveName = "subjuntivo"

var tenseLabels = map[Tense]string{
	TensePresent:       "presente",
	TenseImperfectPast: "pretérito imperfecto",
	TenseSimpleFuture:  "futuro",
}

// Label is the Spanish grammar name of the tense, empty when unknown.
func (t Tense) Label() string {
	return tenseLabels[t]
}

// PersonLabel returns "1", "2" or "3", empty when unknown.
func (pn PersonNumber) PersonLabel() string {
	switch pn.Person() {
	case 1:
		return "1"
	case 2:
		return "2"
	case 3:
		return "3"
	}
	return ""
}

// NumberLabel returns "singular" or "plural", empty when unknown.
func (pn PersonNumber) NumberLabel() string {
	switch {
	case pn == PersonNumberUnknown:
		return ""
	case pn.IsPlural():
		return "plural"
	default:
		return "singular"
	}
}

type BaseResponse struct {
	DocId    string   `json:"doc_id"`
	Strategy string   `json:"strategy"`
	Warnings []string `json:"warnings"`
}

type VerbSection struct {
	Id           int    `json:"id"`
	Verb         string `json:"verbo"`
	Lemma        string `json:"lema"`
	Tense        string `json:"tiempo"`
	Person       string `json:"persona"`
	Number       string `json:"numero"`
	Mood         string `json:"modo"`
	Clause       string `json:"clausula"`
	Sentence     string `json:"oracion"`
	Begin        int    `json:"inicio"`
	End          int    `json:"fin"`
	ClauseBegin  int    `json:"clausula_inicio"`
	ClauseEnd    int    `json:"clausula_fin"`
	SentenceSpan []int  `json:"oracion_span"`
}

type Summary struct {
	Total                    int `json:"total"`
	UniqueLemmas             int `json:"unique_lemmas"`
	SentencesWithSubjunctive int `json:"sentences_with_subjunctive"`
}

type SubjunctiveResponse struct {
	BaseResponse
	Verbs   []VerbSection `json:"verbos_subjuntivo"`
	Summary Summary       `json:"summary"`
}

// NewVerbSection copies a finding into its response form. The sentence is the segment
// that contains the finding, nil when none does.
func NewVerbSection(id int, f Finding, sent *Sentence) VerbSection {
	section := VerbSection{
		Id:          id,
		Verb:        f.SurfaceForm,
		Lemma:       f.Lemma,
		Tense:       f.Tense.Label(),
		Person:      f.PersonNumber.PersonLabel(),
		Number:      f.PersonNumber.NumberLabel(),
		Mood:        MoodSubjunctiveName,
		Clause:      f.Clause,
		Begin:       f.Begin,
		End:         f.End,
		ClauseBegin: f.ClauseBegin,
		ClauseEnd:   f.ClauseEnd,
	}
	if sent != nil {
		section.Sentence = sent.Text
		section.SentenceSpan = []int{sent.Begin, sent.End}
	}
	return section
}
