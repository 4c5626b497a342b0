package service

import "context"

// AggregatorService produces the narrative verdict for a finished session.
// In model mode the numeric aggregate comes from the model and may differ
// from MeanScore over the same answers.
type AggregatorService struct {
	gateway *LLMGateway
}

func NewAggregatorService(gateway *LLMGateway) *AggregatorService {
	return &AggregatorService{gateway: gateway}
}

func (s *AggregatorService) Finalize(ctx context.Context, answers []AnsweredQuestion) (Summary, error) {
	return s.gateway.Summarize(ctx, answers)
}
