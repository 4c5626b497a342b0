package service

import "context"

type ScoringService struct {
	gateway *LLMGateway
}

func NewScoringService(gateway *LLMGateway) *ScoringService {
	return &ScoringService{gateway: gateway}
}

func (s *ScoringService) Evaluate(ctx context.Context, question, answer string) (Evaluation, error) {
	return s.gateway.ScoreAnswer(ctx, question, answer)
}
