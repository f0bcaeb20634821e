package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/observability"
)

// groqService talks to Groq through its OpenAI-compatible chat completions API.
type groqService struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

func NewGroqService(apiKey, baseURL, model string, log *zap.Logger) LLMClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	return &groqService{
		client: &client,
		model:  model,
		log:    log.With(zap.String("provider", "groq"), zap.String("model", model)),
	}
}

func (g *groqService) Provider() string {
	return "groq"
}

// GenerateText implements LLMClient.
func (g *groqService) GenerateText(ctx context.Context, prompt string, temperature float32) (text string, err error) {
	start := time.Now()
	defer func() { observability.ObserveLLMRequest(g.Provider(), start, err) }()

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(g.model),
		Temperature: openai.Float(float64(temperature)),
	})
	if err != nil {
		g.log.Warn("groq request failed", zap.Error(err))
		return "", fmt.Errorf("groq chat completion error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}

	text = completion.Choices[0].Message.Content
	if text == "" {
		return "", errors.New("no text content in response")
	}

	g.log.Debug("groq response received",
		zap.Int("chars", len(text)),
		zap.Duration("latency", time.Since(start)),
	)

	return text, nil
}
