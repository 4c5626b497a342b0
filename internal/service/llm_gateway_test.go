package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	svcmocks "github.com/fadilmartias/ai-interviewer/internal/service/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newGateway(gen service.TextGenerator, timeout time.Duration) *service.LLMGateway {
	cfg := &config.LLMConfig{Provider: config.ProviderGemini, Timeout: timeout, LogPreview: 80}
	return service.NewLLMGateway(gen, cfg, service.NewGatewayMetrics(prometheus.NewRegistry()), zap.NewNop())
}

func newMockGenerator(ctrl *gomock.Controller) *svcmocks.MockTextGenerator {
	gen := svcmocks.NewMockTextGenerator(ctrl)
	gen.EXPECT().Provider().Return(config.ProviderGemini).AnyTimes()
	gen.EXPECT().Model().Return("gemini-2.5-pro").AnyTimes()
	return gen
}

func TestGatewayFallbackMode(t *testing.T) {
	gw := newGateway(nil, time.Second)
	ctx := context.Background()

	assert.Equal(t, service.GatewayInfo{Mode: service.ModeFallback}, gw.Info())

	questions, err := gw.GenerateQuestions(ctx, "", 6)
	require.NoError(t, err)
	require.Len(t, questions, 6)
	assert.Equal(t, "q1", questions[0].QID)
	assert.Equal(t, 120, questions[0].TimeLimitSeconds)
	assert.Equal(t, "q6", questions[5].QID)

	eval, err := gw.ScoreAnswer(ctx, questions[0].Question, "closure "+strings.Repeat("x", 192))
	require.NoError(t, err)
	assert.Equal(t, 100, eval.Score)
	require.Len(t, eval.Breakdown, 2)
	assert.Equal(t, 100, eval.Breakdown[0].Awarded+eval.Breakdown[1].Awarded)

	score := 80
	summary, err := gw.Summarize(ctx, []service.AnsweredQuestion{{Question: "a", Score: &score}, {Question: "b"}})
	require.NoError(t, err)
	assert.Equal(t, 40, summary.TotalScore)
	assert.Equal(t, "Candidate needs significant improvement.", summary.Text)
}

func TestGatewayGenerateQuestions(t *testing.T) {
	testCases := []struct {
		name    string
		count   int
		reply   string
		wantErr error
		want    []service.GeneratedQuestion
	}{
		{
			name:  "fenced reply",
			count: 2,
			reply: "```json\n{\"questions\":[{\"qid\":\"q1\",\"question\":\"What is Go?\",\"timeLimit\":90},{\"qid\":\"q2\",\"question\":\"Why channels?\"}]}\n```",
			want: []service.GeneratedQuestion{
				{QID: "q1", Question: "What is Go?", TimeLimitSeconds: 90},
				{QID: "q2", Question: "Why channels?"},
			},
		},
		{
			name:  "truncated to count",
			count: 1,
			reply: `{"questions":[{"qid":"a","question":"One"},{"qid":"b","question":"Two"}]}`,
			want:  []service.GeneratedQuestion{{QID: "a", Question: "One"}},
		},
		{
			name:  "duplicate qids renumbered",
			count: 3,
			reply: `{"questions":[{"qid":"q1","question":"One"},{"qid":"q1","question":"Two"},{"question":"Three"}]}`,
			want: []service.GeneratedQuestion{
				{QID: "q1", Question: "One"},
				{QID: "q2", Question: "Two"},
				{QID: "q3", Question: "Three"},
			},
		},
		{
			name:    "not json",
			count:   2,
			reply:   "Sure! Here are some questions.",
			wantErr: errs.ErrUpstreamFormat,
		},
		{
			name:    "missing questions field",
			count:   2,
			reply:   `{"items": []}`,
			wantErr: errs.ErrUpstreamFormat,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gen := newMockGenerator(ctrl)
			gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req service.GenerateRequest) (string, error) {
					assert.Equal(t, service.OpGenerateQuestions, req.Operation)
					assert.InDelta(t, 0.3, req.Temperature, 0.001)
					return tc.reply, nil
				}).Times(1)

			got, err := newGateway(gen, time.Second).GenerateQuestions(context.Background(), "resume", tc.count)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.False(t, errs.Retryable(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGatewayScoreAnswer(t *testing.T) {
	testCases := []struct {
		name      string
		reply     string
		wantErr   error
		wantScore int
		wantItems int
	}{
		{
			name:      "valid",
			reply:     `{"score": 72.4, "summary": "Solid", "breakdown": [{"criterion": "Relevance", "awarded": 45, "max": 60}, {"criterion": "Examples", "awarded": 27, "max": 40}]}`,
			wantScore: 72,
			wantItems: 2,
		},
		{name: "clamped high", reply: `{"score": 150}`, wantScore: 100},
		{name: "clamped low", reply: `{"score": -3}`, wantScore: 0},
		{name: "missing score", reply: `{"summary": "no number"}`, wantErr: errs.ErrUpstreamFormat},
		{name: "truncated json", reply: `{"score": 7`, wantErr: errs.ErrUpstreamFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gen := newMockGenerator(ctrl)
			gen.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(tc.reply, nil).Times(1)

			got, err := newGateway(gen, time.Second).ScoreAnswer(context.Background(), "Q", "A")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantScore, got.Score)
			assert.Len(t, got.Breakdown, tc.wantItems)
		})
	}
}

func TestGatewaySummarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := newMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req service.GenerateRequest) (string, error) {
			assert.Equal(t, service.OpSummarize, req.Operation)
			assert.Contains(t, req.Prompt, "Score: unscored")
			return `{"totalScore": 91, "summary": "Strong"}`, nil
		})

	got, err := newGateway(gen, time.Second).Summarize(context.Background(), []service.AnsweredQuestion{{Question: "Q", AnswerText: ""}})
	require.NoError(t, err)
	assert.Equal(t, service.Summary{TotalScore: 91, Text: "Strong"}, got)
}

func TestGatewayTimeoutIsRetryable(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := newMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ service.GenerateRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

	_, err := newGateway(gen, 20*time.Millisecond).ScoreAnswer(context.Background(), "Q", "A")
	assert.ErrorIs(t, err, errs.ErrUpstreamTimeout)
	assert.True(t, errs.Retryable(err))
}

func TestGatewayTransportErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := newMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("boom"))

	_, err := newGateway(gen, time.Second).GenerateQuestions(context.Background(), "", 6)
	assert.ErrorIs(t, err, errs.ErrUpstream)
	assert.False(t, errs.Retryable(err))
}

func TestGatewayZeroCountSkipsModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := newMockGenerator(ctrl)

	got, err := newGateway(gen, time.Second).GenerateQuestions(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGatewayMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	gw := service.NewLLMGateway(nil, &config.LLMConfig{Timeout: time.Second}, service.NewGatewayMetrics(reg), zap.NewNop())

	_, err := gw.ScoreAnswer(context.Background(), "Q", "A")
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "interviewer_llm_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQuestionServiceAppliesDefaultTimeLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := newMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req service.GenerateRequest) (string, error) {
			assert.Contains(t, req.Prompt, "generate 2 interview questions")
			assert.Contains(t, req.Prompt, "Go developer")
			return `{"questions":[{"qid":"q1","question":"One","timeLimit":45},{"qid":"q2","question":"Two"}]}`, nil
		})

	qs := service.NewQuestionService(newGateway(gen, time.Second), &config.InterviewConfig{QuestionCount: 2, DefaultTimeLimit: 120})
	got, err := qs.CreateQuestionSet(context.Background(), "  Go developer  ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 45, got[0].TimeLimitSeconds)
	assert.Equal(t, 120, got[1].TimeLimitSeconds)
}
