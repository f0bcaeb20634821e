package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
)

// LLMClient sends a single-turn prompt to a completion model and returns the
// raw text of the answer.
type LLMClient interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	Provider() string
}

// NewLLMClient builds the client selected by cfg.Provider.
func NewLLMClient(cfg config.LLMConfig, log *zap.Logger) (LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		return NewGroqService(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, log), nil
	case config.ProviderGemini:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, log)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
