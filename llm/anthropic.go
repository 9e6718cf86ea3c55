package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-3-5-haiku-latest"

// Anthropic calls the Messages API through the official SDK.
type Anthropic struct {
	cfg Config
}

func NewAnthropic(cfg Config) *Anthropic {
	if cfg.Model == "" {
		cfg.Model = defaultAnthropicModel
	}
	return &Anthropic{cfg: cfg}
}

func (c *Anthropic) Complete(ctx context.Context, system string, prompt string) (string, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(c.cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(c.cfg.Timeout()),
	}
	if c.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	maxTokens := int64(c.cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
