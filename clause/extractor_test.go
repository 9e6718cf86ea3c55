package clause

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/morispolanco/subjuntivo-buscador/types"
)

func extract(e *Extractor, text string, verb string) types.Span {
	doc := []rune(text)
	begin := len([]rune(text[:strings.Index(text, verb)]))
	return e.Extract(doc, begin, begin+len([]rune(verb)))
}

func TestExtract(t *testing.T) {
	e := NewExtractor(types.ClauseWindow{})
	tests := []struct {
		name string
		text string
		verb string
		want string
	}{
		{"que and period", "Espero que vengas a la fiesta.", "vengas", "que vengas a la fiesta."},
		{"multi-word trigger", "Te lo explico para que entiendas; después seguimos.", "entiendas", "para que entiendas;"},
		{"antes de que", "Salgamos antes de que llueva!", "llueva", "antes de que llueva!"},
		{"ojala without accent", "Ojala tengas suerte", "tengas", "Ojala tengas suerte"},
		{"closest trigger", "Quiero que sepas que te quiero mucho.", "sepas", "que sepas que te quiero mucho."},
		{"no trigger", "Venga usted mañana.", "Venga", "Venga usted mañana."},
		{"stops at previous sentence", "Dijo que sí. Vengan todos", "Vengan", "Vengan todos"},
		{"whole words only", "Aunquesea raro, ande", "ande", "Aunquesea raro, ande"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := extract(e, tt.text, tt.verb)
			require.Equal(t, tt.want, span.Text)
			require.Equal(t, tt.want, string([]rune(tt.text)[span.Begin:span.End]))
		})
	}
}

func TestExtractWindow(t *testing.T) {
	e := NewExtractor(types.ClauseWindow{Backward: 10, Forward: 8})
	text := "Me alegra mucho que al final de todo vinieras con nosotros a la casa"
	span := extract(e, text, "vinieras")
	require.Equal(t, "de todo vinieras con nos", span.Text)
}

func TestExtractContainsVerb(t *testing.T) {
	e := NewExtractor(types.ClauseWindow{})
	text := "  que   sea  "
	doc := []rune(text)
	span := e.Extract(doc, 8, 11)
	require.LessOrEqual(t, span.Begin, 8)
	require.GreaterOrEqual(t, span.End, 11)
	require.Equal(t, "que   sea", span.Text)
}

func TestExtraTriggers(t *testing.T) {
	e := NewExtractor(types.ClauseWindow{}, "Es necesario")
	span := extract(e, "Es necesario vengas pronto.", "vengas")
	require.Equal(t, "Es necesario vengas pronto.", span.Text)
}
