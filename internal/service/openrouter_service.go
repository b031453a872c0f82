package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/resumecritic/engine/internal/config"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService is the alternative generative-AI provider, speaking the
// OpenAI chat-completions dialect. The resty client is created once and
// reused across requests.
type OpenRouterService struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewOpenRouterService(cfg *config.OpenRouterConfig) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	return &OpenRouterService{
		client: resty.New(),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}, nil
}

// Complete sends the prompt and returns the assistant message content.
// Transient failures are retried once after a short backoff.
func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= 1; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying OpenRouter completion after error: %v", lastErr)
			select {
			case <-time.After(500 * time.Millisecond):
			case <-ctx.Done():
				return "", fmt.Errorf("context done during retry: %w", ctx.Err())
			}
		}

		text, err := s.complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (s *OpenRouterService) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an expert HR recruiter who provides objective, structured candidate evaluations."},
				{"role": "user", "content": prompt},
			},
		}).
		Post(openRouterEndpoint)
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter returned %s: %s", resp.Status(), resp.String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no content in openrouter response")
	}
	return text, nil
}
