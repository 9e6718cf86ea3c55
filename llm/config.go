package llm

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Provider       string `envconfig:"SUBJ_LLM_PROVIDER" default:"openai"`
	APIKey         string `envconfig:"SUBJ_LLM_API_KEY"`
	Model          string `envconfig:"SUBJ_LLM_MODEL"`
	BaseURL        string `envconfig:"SUBJ_LLM_BASE_URL"`
	TimeoutSeconds int    `envconfig:"SUBJ_LLM_TIMEOUT_SECONDS" default:"30"`
	MaxTokens      int    `envconfig:"SUBJ_LLM_MAX_TOKENS" default:"2048"`
}

func ConfigFromEnv() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

func (cfg Config) Timeout() time.Duration {
	if cfg.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}
