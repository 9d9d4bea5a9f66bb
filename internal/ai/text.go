package ai

import (
	"context"
	"errors"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"journalx/internal/config"
)

// TextClient generates journal commentary and follow-up replies through the
// Anthropic Messages API.
type TextClient struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func NewTextClient(cfg config.TextModelConfig) (*TextClient, error) {
	key := strings.TrimSpace(os.Getenv(cfg.APIKeyEnv))
	if key == "" {
		return nil, errors.New("text model api key is empty (" + cfg.APIKeyEnv + ")")
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &TextClient{
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: maxTokens,
	}, nil
}

// Generate replays history as alternating turns, appends input as the new
// user turn, and returns the model's reply text.
func (c *TextClient) Generate(ctx context.Context, history []Turn, input string) (string, error) {
	msgs := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		block := anthropic.NewTextBlock(turn.Text)
		if turn.Role == "model" {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(block))
		}
	}
	msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(input)))

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: commentarySystemPrompt},
		},
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("text model returned an empty reply")
	}
	return out, nil
}
