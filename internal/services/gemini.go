package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/resume-screener/internal/observability"
)

type geminiService struct {
	client    *genai.Client
	modelName string
	log       *zap.Logger
}

func NewGeminiService(apiKey, modelName string, log *zap.Logger) (LLMClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
		log:       log.With(zap.String("provider", "gemini"), zap.String("model", modelName)),
	}, nil
}

func (g *geminiService) Provider() string {
	return "gemini"
}

// GenerateText implements LLMClient.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (text string, err error) {
	start := time.Now()
	defer func() { observability.ObserveLLMRequest(g.Provider(), start, err) }()

	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 2048,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		g.log.Warn("gemini request failed", zap.Error(err))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text = resp.Text()
	if text == "" {
		return "", errors.New("no text content in response")
	}

	g.log.Debug("gemini response received",
		zap.Int("chars", len(text)),
		zap.Duration("latency", time.Since(start)),
	)

	return text, nil
}
