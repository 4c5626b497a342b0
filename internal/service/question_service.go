package service

import (
	"context"
	"strings"

	"github.com/fadilmartias/ai-interviewer/internal/config"
)

type QuestionService struct {
	gateway *LLMGateway
	cfg     *config.InterviewConfig
}

func NewQuestionService(gateway *LLMGateway, cfg *config.InterviewConfig) *QuestionService {
	return &QuestionService{gateway: gateway, cfg: cfg}
}

// CreateQuestionSet builds the question list for a new session from the
// candidate's resume text.
func (s *QuestionService) CreateQuestionSet(ctx context.Context, resumeText string) ([]GeneratedQuestion, error) {
	questions, err := s.gateway.GenerateQuestions(ctx, strings.TrimSpace(resumeText), s.cfg.QuestionCount)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if questions[i].TimeLimitSeconds <= 0 {
			questions[i].TimeLimitSeconds = s.cfg.DefaultTimeLimit
		}
	}
	return questions, nil
}
