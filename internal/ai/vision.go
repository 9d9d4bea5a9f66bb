package ai

import (
	"context"
	"errors"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"journalx/internal/config"
)

// VisionClient runs the fixed six-point screenshot analysis through the
// OpenAI chat completions API.
type VisionClient struct {
	client    openai.Client
	model     openai.ChatModel
	maxTokens int64
}

func NewVisionClient(cfg config.VisionModelConfig) (*VisionClient, error) {
	key := strings.TrimSpace(os.Getenv(cfg.APIKeyEnv))
	if key == "" {
		return nil, errors.New("vision model api key is empty (" + cfg.APIKeyEnv + ")")
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &VisionClient{
		client:    openai.NewClient(opts...),
		model:     openai.ChatModel(cfg.Model),
		maxTokens: maxTokens,
	}, nil
}

// Analyze sends the screenshot URL together with the analysis prompt and
// returns the model's text.
func (c *VisionClient) Analyze(ctx context.Context, imageURL string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(visionAnalysisPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageURL,
				}),
			}),
		},
		MaxTokens: openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("vision model returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("vision model returned an empty analysis")
	}
	return out, nil
}
