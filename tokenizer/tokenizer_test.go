package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/morispolanco/subjuntivo-buscador/types"
)

func sentence(doc []rune) types.Sentence {
	return types.Sentence{Span: types.Span{Begin: 0, End: len(doc), Text: string(doc)}}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Espero que vengas a la fiesta.", []string{"Espero", "que", "vengas", "a", "la", "fiesta"}},
		{"¿Quieres que vaya?", []string{"Quieres", "que", "vaya"}},
		{"El acuerdo franco-alemán costó 3,5 millones.", []string{"El", "acuerdo", "franco-alemán", "costó", "3,5", "millones"}},
		{"«Ojalá», dijo.", []string{"Ojalá", "dijo"}},
		{"Dudo -dijo- que sepa", []string{"Dudo", "dijo", "que", "sepa"}},
		{"...", nil},
	}
	tok := NewTokenizer()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			doc := []rune(tt.text)
			var got []string
			for token := range tok.Tokens(doc, sentence(doc)) {
				require.Equal(t, token.Text, string(doc[token.Begin:token.End]))
				got = append(got, token.Text)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTokensOffsetsAndFlags(t *testing.T) {
	doc := []rune("Hola. Tal vez llueva 20 días.")
	sent := types.Sentence{Span: types.Span{Begin: 6, End: len(doc), Text: string(doc[6:])}, Index: 1}
	tokens := NewTokenizer().Collect(doc, sent)
	require.Len(t, tokens, 5)
	require.Equal(t, "Tal", tokens[0].Text)
	require.Equal(t, 6, tokens[0].Begin)
	require.Equal(t, 1, tokens[0].Sentence)
	require.True(t, tokens[2].IsWord)
	require.True(t, tokens[3].IsNumber)
	require.False(t, tokens[3].IsWord)
	require.Nil(t, tokens[0].Analyses)
}

func TestTokensCombiningMarks(t *testing.T) {
	doc := []rune("que este\u0301 bien")
	tokens := NewTokenizer().Collect(doc, sentence(doc))
	require.Len(t, tokens, 3)
	require.Equal(t, "este\u0301", tokens[1].Text)
}
