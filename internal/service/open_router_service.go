package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenRouterService talks to an OpenAI-compatible chat completions endpoint.
type OpenRouterService struct {
	client *resty.Client
	model  string
	log    *zap.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, log *zap.Logger) (*OpenRouterService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY: %w", ErrNoCredential)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &OpenRouterService{
		client: client,
		model:  cfg.Model,
		log:    log,
	}, nil
}

func (s *OpenRouterService) Provider() string {
	return config.ProviderOpenRouter
}

func (s *OpenRouterService) Model() string {
	return s.model
}

func (s *OpenRouterService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", errs.Validation("prompt cannot be empty")
	}

	messages := make([]map[string]string, 0, 2)
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":           s.model,
			"messages":        messages,
			"temperature":     req.Temperature,
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", classifyTransportError(ctx, req.Operation, err)
	}
	if resp.IsError() {
		return "", classifyTransportError(ctx, req.Operation, &statusError{
			Code: resp.StatusCode(),
			Body: gjson.Get(resp.String(), "error.message").String(),
		})
	}

	content := gjson.Get(resp.String(), "choices.0.message.content")
	if !content.Exists() {
		return "", errs.UpstreamFormat(req.Operation, fmt.Errorf("no choices in completion response"))
	}
	return content.String(), nil
}
