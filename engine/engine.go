package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/morispolanco/subjuntivo-buscador/clause"
	"github.com/morispolanco/subjuntivo-buscador/llm"
	"github.com/morispolanco/subjuntivo-buscador/logger"
	"github.com/morispolanco/subjuntivo-buscador/morph"
	"github.com/morispolanco/subjuntivo-buscador/resources"
	"github.com/morispolanco/subjuntivo-buscador/types"
)

// Analyzer finds subjunctive verbs. Implementations hold immutable state only and are safe
// for concurrent use.
type Analyzer interface {
	Analyze(ctx context.Context, text string) Report
	Strategy() string
}

// Report lists findings in order of first occurrence. Warnings describe degraded results,
// such as a fallback from the remote strategy.
type Report struct {
	Findings []types.Finding `json:"findings"`
	Warnings []string        `json:"warnings,omitempty"`
	Strategy string          `json:"strategy"`
}

type options struct {
	completer llm.Completer
	resources fs.FS
}

type Option func(*options)

// WithCompleter sets the language model used by the remote strategy instead of the one
// configured through SUBJ_LLM_* variables.
func WithCompleter(c llm.Completer) Option {
	return func(o *options) {
		o.completer = c
	}
}

// WithResources sets the directory tree holding the tagger's verb tables.
func WithResources(fsys fs.FS) Option {
	return func(o *options) {
		o.resources = fsys
	}
}

// New builds the engine for cfg.Strategy. The tagged strategy fails with ErrModelUnavailable
// when its tables cannot be loaded, unless cfg.DegradeOnModelError is set. The remote strategy
// without a credential is silently the pattern strategy.
func New(cfg types.EngineConfiguration, opts ...Option) (Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	engineLogger := logger.NewLogger("engine")

	extractor := clause.NewExtractor(cfg.ClauseWindow, cfg.ExtraTriggers...)
	patterns := morph.DefaultPatternSet()
	builtin, err := morph.Builtin()
	if err != nil {
		return nil, err
	}
	patternEngine := newPattern(builtin, patterns, extractor)

	switch cfg.Strategy {
	case types.StrategyPattern:
		return patternEngine, nil

	case types.StrategyTagged:
		lexicon, err := loadModel(cfg, o.resources)
		if err != nil {
			if !cfg.DegradeOnModelError {
				return nil, err
			}
			engineLogger.Warn().Err(err).Msg("tagger model unavailable, using the pattern strategy")
			patternEngine.warnings = []string{fmt.Sprintf("tagger model unavailable, pattern strategy used: %v", err)}
			return patternEngine, nil
		}
		engineLogger.Info().Int("verbs", lexicon.Size()).Msg("tagger model loaded")
		return newTagged(lexicon, patterns, extractor), nil

	case types.StrategyRemote:
		completer := o.completer
		if completer == nil {
			llmConfig, err := llm.ConfigFromEnv()
			if err != nil {
				return nil, err
			}
			completer, err = llm.NewCompleter(llmConfig)
			if errors.Is(err, llm.ErrNotConfigured) {
				engineLogger.Info().Msg("no llm credential, using the pattern strategy")
				return patternEngine, nil
			}
			if err != nil {
				return nil, err
			}
		}
		return newRemote(llm.NewDelegate(completer), patternEngine, extractor), nil
	}
	return nil, fmt.Errorf("wrong strategy %q", cfg.Strategy)
}

func loadModel(cfg types.EngineConfiguration, fsys fs.FS) (*morph.Lexicon, error) {
	source := "bundled tables"
	if fsys == nil {
		if cfg.ResourceDir != "" {
			fsys = os.DirFS(cfg.ResourceDir)
			source = cfg.ResourceDir
		} else {
			fsys = resources.Morphology()
		}
	}
	lexicon, err := morph.Load(fsys)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v; point SUBJ_RESOURCE_DIR (resource_dir) at a directory holding %s and %s, or unset it to use the bundled tables",
			ErrModelUnavailable, source, err, morph.VerbsFile, morph.FormsFile)
	}
	return lexicon, nil
}
