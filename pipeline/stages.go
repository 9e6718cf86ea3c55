package pipeline

import (
	"context"

	"github.com/morispolanco/subjuntivo-buscador/engine"
	"github.com/morispolanco/subjuntivo-buscador/nlp"
	"github.com/morispolanco/subjuntivo-buscador/types"
)

type SentenceDetector func(in <-chan string) <-chan types.Sentence

type Analysis func(ctx context.Context, in <-chan string) <-chan engine.Report

func NewSentenceDetector(segmenter *nlp.Segmenter) SentenceDetector {
	return func(in <-chan string) <-chan types.Sentence {
		out := make(chan types.Sentence)
		go func() {
			defer close(out)
			for text := range in {
				if len(text) == 0 {
					continue
				}
				for sent := range segmenter.Sentences([]rune(text)) {
					out <- sent
				}
			}
		}()
		return out
	}
}

func NewAnalysis(analyzer engine.Analyzer) Analysis {
	return func(ctx context.Context, in <-chan string) <-chan engine.Report {
		out := make(chan engine.Report)
		go func() {
			defer close(out)
			for text := range in {
				out <- analyzer.Analyze(ctx, text)
			}
		}()
		return out
	}
}
