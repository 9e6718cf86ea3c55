package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotConfigured = errors.New("llm credential is not configured")
	ErrStatus        = errors.New("llm service returned an error status")
	ErrEmptyResponse = errors.New("llm service returned no text")
)

// Completer sends one system and user prompt pair and returns the model's text.
type Completer interface {
	Complete(ctx context.Context, system string, prompt string) (string, error)
}

// NewCompleter builds the provider named in cfg. Without an API key it returns
// ErrNotConfigured.
func NewCompleter(cfg Config) (Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
