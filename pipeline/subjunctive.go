package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/morispolanco/subjuntivo-buscador/engine"
	"github.com/morispolanco/subjuntivo-buscador/logger"
	"github.com/morispolanco/subjuntivo-buscador/nlp"
	"github.com/morispolanco/subjuntivo-buscador/types"
)

type SubjunctiveParams struct {
	CacheTTL time.Duration `json:"cache_ttl"`
}

func DefaultSubjunctiveParams() SubjunctiveParams {
	return SubjunctiveParams{CacheTTL: DefaultCacheTTL}
}

// Subjunctive builds the pipeline around one shared analyzer. A nil cache disables result
// caching.
func Subjunctive(analyzer engine.Analyzer, cache ResultCache, params SubjunctiveParams) Pipeline {
	pplnLogger := logger.NewLogger("Subjunctive pipeline")
	pplnLogger.Info().
		Str("strategy", analyzer.Strategy()).
		Interface("params", params).
		Msg("Starting subjunctive pipeline (see parameters in 'params' field)")
	if cache == nil {
		cache = noCache{}
	}

	sentenceDetector := NewSentenceDetector(nlp.NewSegmenter())
	analysis := NewAnalysis(analyzer)
	response := NewSubjunctiveResult()

	return func(ctx context.Context, request Request) <-chan string {
		responseChan := make(chan string, 1)
		pplnLog := pplnLogger.With().Str("tid", request.Tid).Logger()
		errLogger := pplnLog.With().Caller().Logger()
		pplnLog.Info().Msg("Started subjunctive pipeline")

		go func() {
			defer close(responseChan)
			key := CacheKey(analyzer.Strategy(), request.Text)
			if txt, ok := fromCache(ctx, cache, key, request, pplnLog); ok {
				pplnLog.Info().Msg("Finished subjunctive pipeline from cache")
				responseChan <- txt
				return
			}

			sentIn := make(chan string, 1)
			textIn := make(chan string, 1)

			sd := sentenceDetector(sentIn)
			an := analysis(ctx, textIn)
			res := response(an, sd, request)

			sentIn <- request.Text
			close(sentIn)
			textIn <- request.Text
			close(textIn)

			result, ok := <-res
			if !ok {
				errLogger.Error().Msg("Response builder closed without a result")
				return
			}
			findingsTotal.WithLabelValues(result.Strategy).Add(float64(result.Data.Summary.Total))

			buf, err := json.Marshal(result.Data)
			if err != nil {
				errLogger.Err(err).Msg("Failed to marshall response")
				return
			}
			txt := string(buf)

			// degraded results are not cached so that a recovered service is used again
			if len(result.Data.Warnings) == 0 {
				if err := cache.SetResult(ctx, key, txt, params.CacheTTL); err != nil {
					pplnLog.Warn().Err(err).Str("cache_key", key).Msg("Failed to cache response")
				}
			} else {
				degradedTotal.WithLabelValues(result.Strategy).Inc()
			}
			pplnLog.Info().
				Int("findings", result.Data.Summary.Total).
				Str("strategy", result.Strategy).
				Msg("Finished subjunctive pipeline")
			responseChan <- txt
		}()

		return responseChan
	}
}

// fromCache returns the cached response rewritten for the request's tid.
func fromCache(ctx context.Context, cache ResultCache, key string, request Request, pplnLog zerolog.Logger) (string, bool) {
	cached, ok, err := cache.GetResult(ctx, key)
	if err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		pplnLog.Warn().Err(err).Str("cache_key", key).Msg("Failed to read cached response")
		return "", false
	}
	if !ok {
		cacheLookups.WithLabelValues("miss").Inc()
		return "", false
	}
	var response types.SubjunctiveResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		pplnLog.Warn().Err(err).Str("cache_key", key).Msg("Cached response is not valid, ignoring it")
		return "", false
	}
	response.DocId = request.Tid
	buf, err := json.Marshal(response)
	if err != nil {
		return "", false
	}
	cacheLookups.WithLabelValues("hit").Inc()
	return string(buf), true
}
