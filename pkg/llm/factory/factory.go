package factory

import (
	"context"
	"fmt"
	"time"

	"career-assistant-be/pkg/llm"
	"career-assistant-be/pkg/llm/gemini"
	"career-assistant-be/pkg/llm/openai"
)

type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai", "":
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.Timeout), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		return gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
