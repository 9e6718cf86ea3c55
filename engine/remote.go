package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/morispolanco/subjuntivo-buscador/clause"
	"github.com/morispolanco/subjuntivo-buscador/llm"
	"github.com/morispolanco/subjuntivo-buscador/logger"
	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/utils"
)

var errNotLocated = errors.New("verb not found in text")

// Remote asks a language model for the verbs and places them in the text locally. Any
// failure falls back to the pattern engine and is reported as a warning.
type Remote struct {
	delegate  *llm.Delegate
	fallback  *Local
	extractor *clause.Extractor
	logger    zerolog.Logger
}

func newRemote(delegate *llm.Delegate, fallback *Local, extractor *clause.Extractor) *Remote {
	return &Remote{
		delegate:  delegate,
		fallback:  fallback,
		extractor: extractor,
		logger:    logger.NewLogger("engine.remote"),
	}
}

func (e *Remote) Strategy() string {
	return types.StrategyRemote
}

func (e *Remote) Analyze(ctx context.Context, text string) Report {
	if strings.TrimSpace(text) == "" {
		return Report{Strategy: types.StrategyRemote, Findings: []types.Finding{}}
	}

	findings, err := e.safeDetect(ctx, text)
	if err == nil {
		return Report{Strategy: types.StrategyRemote, Findings: findings}
	}

	var remoteErr *RemoteServiceError
	if !errors.As(err, &remoteErr) {
		remoteErr = &RemoteServiceError{Op: "analyze", Err: err}
	}
	e.logger.Warn().Err(remoteErr).Msg("remote analysis failed, falling back to patterns")

	report := e.fallback.Analyze(ctx, text)
	report.Warnings = append(report.Warnings, fmt.Sprintf("remote analysis unavailable, pattern strategy used: %v", remoteErr))
	return report
}

func (e *Remote) safeDetect(ctx context.Context, text string) (findings []types.Finding, err error) {
	defer utils.RecoverWithError(&err)

	verbs, err := e.delegate.Detect(ctx, text)
	if err != nil {
		return nil, &RemoteServiceError{Op: "detect", Err: err}
	}
	findings, err = e.locate([]rune(text), verbs)
	if err != nil {
		return nil, &RemoteServiceError{Op: "locate", Err: err}
	}
	return findings, nil
}

// locate assigns offsets by scanning forward from the previous match. A verb listed out of
// order is searched again from the start of the text, skipping occurrences already taken.
func (e *Remote) locate(doc []rune, verbs []llm.Verb) ([]types.Finding, error) {
	findings := make([]types.Finding, 0, len(verbs))
	taken := make(map[int]bool, len(verbs))
	cursor := 0
	for _, v := range verbs {
		needle := []rune(utils.NFC(strings.TrimSpace(v.Verbo)))
		begin := findWord(doc, needle, cursor, taken)
		if begin < 0 {
			begin = findWord(doc, needle, 0, taken)
		}
		if begin < 0 {
			return nil, fmt.Errorf("%w: %q", errNotLocated, v.Verbo)
		}
		end := begin + len(needle)
		taken[begin] = true
		cursor = end

		span := e.extractor.Extract(doc, begin, end)
		findings = append(findings, types.Finding{
			SurfaceForm:  string(doc[begin:end]),
			Lemma:        strings.ToLower(strings.TrimSpace(v.Lema)),
			Clause:       span.Text,
			Tense:        llm.ParseTense(v.Tiempo),
			PersonNumber: llm.ParsePersonNumber(v.Persona, v.Numero),
			Begin:        begin,
			End:          end,
			ClauseBegin:  span.Begin,
			ClauseEnd:    span.End,
		})
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return types.SpanSortFunction(findings[i].GetSpan(), findings[j].GetSpan())
	})
	return findings, nil
}

// findWord returns the first whole-word, case-insensitive occurrence of needle at or after from.
func findWord(doc []rune, needle []rune, from int, taken map[int]bool) int {
	n := len(needle)
	if n == 0 {
		return -1
	}
	target := string(needle)
	for i := from; i+n <= len(doc); i++ {
		if taken[i] {
			continue
		}
		if i > 0 && utils.IsWordRune(doc[i-1]) {
			continue
		}
		if i+n < len(doc) && utils.IsWordRune(doc[i+n]) {
			continue
		}
		if strings.EqualFold(string(doc[i:i+n]), target) {
			return i
		}
	}
	return -1
}
