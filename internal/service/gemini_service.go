package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type GeminiService struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, log *zap.Logger) (*GeminiService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY: %w", ErrNoCredential)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-pro"
	}
	return &GeminiService{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (s *GeminiService) Provider() string {
	return config.ProviderGemini
}

func (s *GeminiService) Model() string {
	return s.model
}

func (s *GeminiService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", errs.Validation("prompt cannot be empty")
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	result, err := s.client.Models.GenerateContent(
		ctx,
		s.model,
		genai.Text(req.Prompt),
		genConfig,
	)
	if err != nil {
		return "", classifyTransportError(ctx, req.Operation, err)
	}

	if err := validateGenerateResponse(result); err != nil {
		return "", errs.UpstreamFormat(req.Operation, err)
	}
	return result.Text(), nil
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}
