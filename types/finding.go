package types

import "fmt"

type Tense int8

const (
	TenseUnknown Tense = iota
	TensePresent
	TenseImperfectPast
	TenseSimpleFuture
)

var tenseNames = map[Tense]string{
	TenseUnknown:       "unknown",
	TensePresent:       "present",
	TenseImperfectPast: "imperfect_past",
	TenseSimpleFuture:  "simple_future",
}

func (t Tense) Name() string {
	if name, ok := tenseNames[t]; ok {
		return name
	}
	return tenseNames[TenseUnknown]
}

func (t Tense) String() string {
	return t.Name()
}

func (t Tense) MarshalText() ([]byte, error) {
	return []byte(t.Name()), nil
}

func (t *Tense) UnmarshalText(b []byte) error {
	for tense, name := range tenseNames {
		if name == string(b) {
			*t = tense
			return nil
		}
	}
	return fmt.Errorf("unknown tense %q", string(b))
}

type PersonNumber int8

const (
	PersonNumberUnknown PersonNumber = iota
	FirstSingular
	SecondSingular
	ThirdSingular
	FirstPlural
	SecondPlural
	ThirdPlural
)

var personNumberNames = map[PersonNumber]string{
	PersonNumberUnknown: "unknown",
	FirstSingular:       "first_singular",
	SecondSingular:      "second_singular",
	ThirdSingular:       "third_singular",
	FirstPlural:         "first_plural",
	SecondPlural:        "second_plural",
	ThirdPlural:         "third_plural",
}

func (pn PersonNumber) Name() string {
	if name, ok := personNumberNames[pn]; ok {
		return name
	}
	return personNumberNames[PersonNumberUnknown]
}

func (pn PersonNumber) String() string {
	return pn.Name()
}

// Person returns 1, 2 or 3, and 0 when unknown.
func (pn PersonNumber) Person() int {
	switch pn {
	case FirstSingular, FirstPlural:
		return 1
	case SecondSingular, SecondPlural:
		return 2
	case ThirdSingular, ThirdPlural:
		return 3
	default:
		return 0
	}
}

func (pn PersonNumber) IsPlural() bool {
	return pn == FirstPlural || pn == SecondPlural || pn == ThirdPlural
}

func (pn PersonNumber) MarshalText() ([]byte, error) {
	return []byte(pn.Name()), nil
}

func (pn *PersonNumber) UnmarshalText(b []byte) error {
	for value, name := range personNumberNames {
		if name == string(b) {
			*pn = value
			return nil
		}
	}
	return fmt.Errorf("unknown person/number %q", string(b))
}

// NewPersonNumber builds the value from a grammatical person (1..3) and number.
func NewPersonNumber(person int, plural bool) PersonNumber {
	switch {
	case person == 1 && !plural:
		return FirstSingular
	case person == 2 && !plural:
		return SecondSingular
	case person == 3 && !plural:
		return ThirdSingular
	case person == 1:
		return FirstPlural
	case person == 2:
		return SecondPlural
	case person == 3:
		return ThirdPlural
	default:
		return PersonNumberUnknown
	}
}

// Finding is one subjunctive verb occurrence. Offsets are rune indices into the
// analyzed document.
type Finding struct {
	SurfaceForm  string       `json:"surface_form"`
	Lemma        string       `json:"lemma"`
	Clause       string       `json:"clause"`
	Tense        Tense        `json:"tense"`
	PersonNumber PersonNumber `json:"person_number"`
	Begin        int          `json:"start_offset"`
	End          int          `json:"end_offset"`
	ClauseBegin  int          `json:"clause_start_offset"`
	ClauseEnd    int          `json:"clause_end_offset"`
}

func (f Finding) GetSpan() *Span {
	return &Span{Begin: f.Begin, End: f.End, Text: f.SurfaceForm}
}

// Validate checks the finding against the document it was produced from.
func (f Finding) Validate(document []rune) error {
	if f.Lemma == "" {
		return fmt.Errorf("finding %q has an empty lemma", f.SurfaceForm)
	}
	if f.Begin < 0 || f.Begin >= f.End || f.End > len(document) {
		return fmt.Errorf("finding %q has invalid offsets [%d, %d)", f.SurfaceForm, f.Begin, f.End)
	}
	if string(document[f.Begin:f.End]) != f.SurfaceForm {
		return fmt.Errorf("finding %q does not match document text %q", f.SurfaceForm, string(document[f.Begin:f.End]))
	}
	if f.ClauseBegin > f.Begin || f.ClauseEnd < f.End || f.ClauseEnd > len(document) {
		return fmt.Errorf("clause [%d, %d) does not cover finding %q", f.ClauseBegin, f.ClauseEnd, f.SurfaceForm)
	}
	if string(document[f.ClauseBegin:f.ClauseEnd]) != f.Clause {
		return fmt.Errorf("clause text of %q does not match document", f.SurfaceForm)
	}
	return nil
}
