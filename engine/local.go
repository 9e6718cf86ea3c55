package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/morispolanco/subjuntivo-buscador/clause"
	"github.com/morispolanco/subjuntivo-buscador/logger"
	"github.com/morispolanco/subjuntivo-buscador/mood"
	"github.com/morispolanco/subjuntivo-buscador/morph"
	"github.com/morispolanco/subjuntivo-buscador/nlp"
	"github.com/morispolanco/subjuntivo-buscador/tokenizer"
	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

// Local runs the whole analysis in process: segmentation, optional tagging, mood
// classification, attribute resolution and clause extraction.
type Local struct {
	strategy   string
	segmenter  *nlp.Segmenter
	tokenizer  *tokenizer.Tokenizer
	tagger     *morph.Tagger
	classifier mood.Classifier
	resolver   *morph.Resolver
	extractor  *clause.Extractor
	warnings   []string
	logger     zerolog.Logger
}

func newPattern(lexicon *morph.Lexicon, patterns *morph.PatternSet, extractor *clause.Extractor) *Local {
	return &Local{
		strategy:   types.StrategyPattern,
		segmenter:  nlp.NewSegmenter(),
		tokenizer:  tokenizer.NewTokenizer(),
		classifier: mood.NewPattern(lexicon, patterns),
		resolver:   morph.NewResolver(lexicon, patterns),
		extractor:  extractor,
		logger:     logger.NewLogger("engine.pattern"),
	}
}

func newTagged(lexicon *morph.Lexicon, patterns *morph.PatternSet, extractor *clause.Extractor) *Local {
	return &Local{
		strategy:   types.StrategyTagged,
		segmenter:  nlp.NewSegmenter(),
		tokenizer:  tokenizer.NewTokenizer(),
		tagger:     morph.NewTagger(lexicon),
		classifier: mood.NewTagged(patterns, mood.NewPattern(lexicon, patterns)),
		resolver:   morph.NewResolver(lexicon, patterns),
		extractor:  extractor,
		logger:     logger.NewLogger("engine.tagged"),
	}
}

func (e *Local) Strategy() string {
	return e.strategy
}

func (e *Local) Analyze(ctx context.Context, text string) Report {
	report := Report{
		Strategy: e.strategy,
		Warnings: append([]string(nil), e.warnings...),
	}

	findings, err := e.safeDetect(ctx, text)
	if err != nil {
		e.logger.Error().Caller().Err(err).Msg("analysis failed")
		report.Warnings = append(report.Warnings, fmt.Sprintf("analysis failed: %v", err))
		return report
	}
	report.Findings = findings
	return report
}

func (e *Local) safeDetect(ctx context.Context, text string) (findings []types.Finding, err error) {
	defer utils.RecoverWithError(&err)
	return e.detect(ctx, text)
}

func (e *Local) detect(ctx context.Context, text string) ([]types.Finding, error) {
	original := []rune(text)
	doc := original
	// offsets must refer to the caller's text, so only length-preserving normalization is used
	if normalized := utils.NFC(text); normalized != text && utils.IsSameLength(normalized, text) {
		doc = []rune(normalized)
	}

	findings := []types.Finding{}
	for sent := range e.segmenter.Sentences(doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tokens := e.tokenizer.Collect(doc, sent)
		if e.tagger != nil {
			e.tagger.Tag(tokens)
		}
		for _, token := range tokens {
			if !e.classifier.IsSubjunctive(token) {
				continue
			}
			attrs := e.resolver.Resolve(token)
			span := e.extractor.Extract(doc, token.Begin, token.End)
			findings = append(findings, types.Finding{
				SurfaceForm:  string(original[token.Begin:token.End]),
				Lemma:        attrs.Lemma,
				Clause:       string(original[span.Begin:span.End]),
				Tense:        attrs.Tense,
				PersonNumber: attrs.PersonNumber,
				Begin:        token.Begin,
				End:          token.End,
				ClauseBegin:  span.Begin,
				ClauseEnd:    span.End,
			})
		}
	}
	return findings, nil
}
