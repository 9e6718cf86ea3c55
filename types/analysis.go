package types

type POS byte

const (
	POSUnknown POS = iota
	POSVerb
	POSAux
	POSNoun
	POSDet
	POSAdp
	POSPron
	POSCConj
	POSSConj
	POSAdv
)

var posNames = map[POS]string{
	POSUnknown: "X",
	POSVerb:    "VERB",
	POSAux:     "AUX",
	POSNoun:    "NOUN",
	POSDet:     "DET",
	POSAdp:     "ADP",
	POSPron:    "PRON",
	POSCConj:   "CCONJ",
	POSSConj:   "SCONJ",
	POSAdv:     "ADV",
}

func (p POS) Name() string {
	if name, ok := posNames[p]; ok {
		return name
	}
	return posNames[POSUnknown]
}

func (p POS) String() string {
	return p.Name()
}

func (p POS) IsVerbal() bool {
	return p == POSVerb || p == POSAux
}

type Mood byte

const (
	MoodNone Mood = iota
	MoodSubjunctive
	MoodIndicative
	MoodImperative
)

func (m Mood) Name() string {
	switch m {
	case MoodSubjunctive:
		return "subjunctive"
	case MoodIndicative:
		return "indicative"
	case MoodImperative:
		return "imperative"
	default:
		return "none"
	}
}

func (m Mood) String() string {
	return m.Name()
}

func (m Mood) MarshalText() ([]byte, error) {
	return []byte(m.Name()), nil
}

// Analysis is one morphological reading of a token.
type Analysis struct {
	POS          POS
	Lemma        string
	Mood         Mood
	Tense        Tense
	PersonNumber PersonNumber
}
