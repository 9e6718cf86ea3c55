package pipeline

import (
	"sort"
	"strings"

	"github.com/morispolanco/subjuntivo-buscador/engine"
	"github.com/morispolanco/subjuntivo-buscador/types"
)

type Result struct {
	Strategy string
	Data     types.SubjunctiveResponse
}

func NewSubjunctiveResult() func(report <-chan engine.Report, in <-chan types.Sentence, request Request) <-chan Result {
	return func(report <-chan engine.Report, in <-chan types.Sentence, request Request) <-chan Result {
		out := make(chan Result)
		go func() {
			defer close(out)
			var sentences []types.Sentence
			for sent := range in {
				sentences = append(sentences, sent)
			}
			rep, ok := <-report
			if !ok {
				return
			}

			var response types.SubjunctiveResponse
			response.DocId = request.Tid
			response.Strategy = rep.Strategy
			response.Warnings = make([]string, len(rep.Warnings))
			copy(response.Warnings, rep.Warnings)
			response.Verbs = make([]types.VerbSection, len(rep.Findings))

			for i, finding := range rep.Findings {
				response.Verbs[i] = types.NewVerbSection(i, finding, enclosingSentence(sentences, finding))
			}
			response.Summary = summarize(rep.Findings, sentences)

			out <- Result{
				Strategy: rep.Strategy,
				Data:     response,
			}
		}()
		return out
	}
}

// sentences are ordered and do not overlap
func enclosingSentence(sentences []types.Sentence, finding types.Finding) *types.Sentence {
	i := sort.Search(len(sentences), func(i int) bool {
		return sentences[i].End >= finding.End
	})
	if i < len(sentences) && sentences[i].Begin <= finding.Begin {
		return &sentences[i]
	}
	return nil
}

func summarize(findings []types.Finding, sentences []types.Sentence) types.Summary {
	lemmas := make(map[string]bool)
	withVerbs := make(map[int]bool)
	for _, finding := range findings {
		lemmas[strings.ToLower(finding.Lemma)] = true
		if sent := enclosingSentence(sentences, finding); sent != nil {
			withVerbs[sent.Index] = true
		}
	}
	return types.Summary{
		Total:                    len(findings),
		UniqueLemmas:             len(lemmas),
		SentencesWithSubjunctive: len(withVerbs),
	}
}
