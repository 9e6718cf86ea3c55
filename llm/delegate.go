package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

var ErrInvalidResponse = errors.New("invalid llm response")

const systemPrompt = `Eres un lingüista experto en gramática española. Identificas verbos conjugados en modo subjuntivo.`

const promptTemplate = `Analiza el siguiente texto en español e identifica todos los verbos en modo subjuntivo.
Responde únicamente con un objeto JSON con esta forma exacta:
{"verbos_subjuntivo": [{"verbo": "forma tal como aparece en el texto", "lema": "infinitivo", "tiempo": "presente | pretérito imperfecto | futuro", "persona": "1 | 2 | 3", "numero": "singular | plural", "clausula": "cláusula que contiene el verbo"}]}
Si no hay verbos en subjuntivo, responde {"verbos_subjuntivo": []}.
Enumera los verbos en el orden en que aparecen en el texto.

Texto:
%s`

// Verb is one entry of the model's answer.
type Verb struct {
	Verbo    string `json:"verbo"`
	Lema     string `json:"lema"`
	Tiempo   string `json:"tiempo"`
	Persona  string `json:"persona"`
	Numero   string `json:"numero"`
	Clausula string `json:"clausula"`
}

type answer struct {
	Verbos *[]Verb `json:"verbos_subjuntivo"`
}

// Delegate asks a language model for the subjunctive verbs of a text.
type Delegate struct {
	completer Completer
}

func NewDelegate(completer Completer) *Delegate {
	return &Delegate{completer: completer}
}

func (d *Delegate) Detect(ctx context.Context, text string) ([]Verb, error) {
	content, err := d.completer.Complete(ctx, systemPrompt, fmt.Sprintf(promptTemplate, text))
	if err != nil {
		return nil, err
	}
	return ParseResponse(content)
}

// ParseResponse decodes the first JSON object of content. It fails on a missing object,
// invalid JSON, a missing "verbos_subjuntivo" key or an entry without verbo or lema.
func ParseResponse(content string) ([]Verb, error) {
	raw, err := ExtractJSONObject(content)
	if err != nil {
		return nil, err
	}
	var a answer
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if a.Verbos == nil {
		return nil, fmt.Errorf("%w: verbos_subjuntivo is missing", ErrInvalidResponse)
	}
	verbs := *a.Verbos
	for i, v := range verbs {
		if strings.TrimSpace(v.Verbo) == "" || strings.TrimSpace(v.Lema) == "" {
			return nil, fmt.Errorf("%w: entry %d has no verbo or lema", ErrInvalidResponse, i)
		}
	}
	return verbs, nil
}

// ParseTense maps the model's free-text tense to a tense value.
func ParseTense(s string) types.Tense {
	s = utils.FoldAccents(strings.ToLower(strings.TrimSpace(s)))
	switch {
	case s == "":
		return types.TenseUnknown
	case strings.Contains(s, "imperfect"), strings.Contains(s, "preterit"), strings.Contains(s, "pasado"):
		return types.TenseImperfectPast
	case strings.Contains(s, "futur"):
		return types.TenseSimpleFuture
	case strings.Contains(s, "present"):
		return types.TensePresent
	}
	return types.TenseUnknown
}

// ParsePersonNumber combines the model's person ("1", "primera", "3ª") and number
// ("singular", "plural").
func ParsePersonNumber(persona string, numero string) types.PersonNumber {
	p := utils.FoldAccents(strings.ToLower(strings.TrimSpace(persona)))
	person := 0
	switch {
	case strings.HasPrefix(p, "1"), strings.HasPrefix(p, "primer"):
		person = 1
	case strings.HasPrefix(p, "2"), strings.HasPrefix(p, "segund"):
		person = 2
	case strings.HasPrefix(p, "3"), strings.HasPrefix(p, "tercer"):
		person = 3
	}

	n := strings.ToLower(strings.TrimSpace(numero))
	if strings.Contains(p, "plural") {
		n = "plural"
	}
	switch {
	case strings.HasPrefix(n, "plural"):
		return types.NewPersonNumber(person, true)
	case strings.HasPrefix(n, "singular"):
		return types.NewPersonNumber(person, false)
	}
	return types.PersonNumberUnknown
}
