package llm

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/voice-tutor/logging"
)

//go:generate mockgen -destination=../mocks/mock_llm.go -package=mocks github.com/mrsingh-rishi/voice-tutor/llm Completer

// Completer turns a prompt into the raw text of a JSON object.
type Completer interface {
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

// NewClient builds the shared OpenAI client. An empty baseURL keeps the
// public API endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

type OpenAIClient struct {
	Client      *openai.Client
	Model       string
	Temperature float32
	Logger      *zap.Logger
}

func NewOpenAIClient(client *openai.Client, model string, temperature float32, logger *zap.Logger) (*OpenAIClient, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	if model == "" {
		return nil, errors.New("model is required")
	}
	return &OpenAIClient{
		Client:      client,
		Model:       model,
		Temperature: temperature,
		Logger:      logging.OrNop(logger),
	}, nil
}

// CompleteJSON sends a single user message and asks for a JSON object back.
// A response without choices yields "{}".
func (c *OpenAIClient) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}

	c.Logger.Debug("chat completion finished",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "{}", nil
	}
	return resp.Choices[0].Message.Content, nil
}
