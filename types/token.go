package types

import "strings"

type Token struct {
	Span
	Sentence int
	IsWord   bool
	IsNumber bool
	// Analyses is filled by the morphology tagger; nil means the token was not tagged,
	// an empty non-nil slice means the tagger does not know the form.
	Analyses []Analysis
}

func (token *Token) GetSpan() *Span {
	return &token.Span
}

func (token Token) Lower() string {
	return strings.ToLower(token.Text)
}

func (token Token) IsTagged() bool {
	return token.Analyses != nil
}

func (token Token) IsKnown() bool {
	return len(token.Analyses) > 0
}

func (token Token) IsVerbLike() bool {
	for _, a := range token.Analyses {
		if a.POS.IsVerbal() {
			return true
		}
	}
	return false
}

func (token Token) HasPOS(pos POS) bool {
	for _, a := range token.Analyses {
		if a.POS == pos {
			return true
		}
	}
	return false
}

// VerbAnalyses returns the verbal readings, optionally restricted to one mood.
func (token Token) VerbAnalyses(mood Mood) []Analysis {
	var result []Analysis
	for _, a := range token.Analyses {
		if !a.POS.IsVerbal() {
			continue
		}
		if mood != MoodNone && a.Mood != mood {
			continue
		}
		result = append(result, a)
	}
	return result
}
