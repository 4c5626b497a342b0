package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/logger"
	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	OpGenerateQuestions = "generate_questions"
	OpScoreAnswer       = "score_answer"
	OpSummarize         = "summarize"

	ModeModel    = "model"
	ModeFallback = "fallback"
)

type GeneratedQuestion struct {
	QID              string
	Question         string
	TimeLimitSeconds int
}

type Evaluation struct {
	Score     int
	Summary   string
	Breakdown []model.RubricItem
}

type AnsweredQuestion struct {
	Question   string
	AnswerText string
	Score      *int
}

type Summary struct {
	TotalScore int
	Text       string
}

type GatewayInfo struct {
	Mode     string `json:"mode"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// LLMGateway is the single entry point to the language model. Without a
// generator every call is answered by the deterministic fallback. With one,
// each call makes exactly one model request and malformed replies are
// returned as errors instead of being replaced by fallback data.
type LLMGateway struct {
	generator TextGenerator
	timeout   time.Duration
	preview   int
	metrics   *GatewayMetrics
	log       *zap.Logger
}

func NewLLMGateway(generator TextGenerator, cfg *config.LLMConfig, metrics *GatewayMetrics, log *zap.Logger) *LLMGateway {
	g := &LLMGateway{
		generator: generator,
		timeout:   cfg.Timeout,
		preview:   cfg.LogPreview,
		metrics:   metrics,
		log:       logger.WithFields(log),
	}
	if generator == nil {
		g.log.Warn("no model credential configured, gateway runs in deterministic fallback mode")
	} else {
		g.log = logger.WithFields(g.log, logger.CommonFields(generator.Provider(), generator.Model())...)
		g.log.Info("gateway runs in model mode", zap.Duration("timeout", g.timeout))
	}
	return g
}

func (g *LLMGateway) Info() GatewayInfo {
	if g.generator == nil {
		return GatewayInfo{Mode: ModeFallback}
	}
	return GatewayInfo{Mode: ModeModel, Provider: g.generator.Provider(), Model: g.generator.Model()}
}

func (g *LLMGateway) provider() string {
	if g.generator == nil {
		return ModeFallback
	}
	return g.generator.Provider()
}

func (g *LLMGateway) GenerateQuestions(ctx context.Context, candidateContext string, count int) ([]GeneratedQuestion, error) {
	if count < 0 {
		count = 0
	}
	if g.generator == nil {
		g.metrics.observe(g.provider(), OpGenerateQuestions, outcomeFallback, 0)
		return fallbackQuestions(count), nil
	}
	if count == 0 {
		return []GeneratedQuestion{}, nil
	}

	reply, err := g.call(ctx, OpGenerateQuestions, temperatureQuestions, questionsPrompt(candidateContext, count))
	if err != nil {
		return nil, err
	}
	parsed, err := decodeReply(reply, questionsReplySchema)
	if err != nil {
		return nil, g.formatError(OpGenerateQuestions, reply, err)
	}

	items := parsed.Get("questions").Array()
	if len(items) > count {
		items = items[:count]
	}
	questions := make([]GeneratedQuestion, 0, len(items))
	for _, item := range items {
		questions = append(questions, GeneratedQuestion{
			QID:              item.Get("qid").String(),
			Question:         item.Get("question").String(),
			TimeLimitSeconds: int(item.Get("timeLimit").Int()),
		})
	}
	if len(questions) < count {
		g.log.Warn("model returned fewer questions than requested",
			zap.Int("requested", count),
			zap.Int("received", len(questions)),
		)
	}
	return renumberQuestions(questions), nil
}

func (g *LLMGateway) ScoreAnswer(ctx context.Context, question, answer string) (Evaluation, error) {
	if g.generator == nil {
		g.metrics.observe(g.provider(), OpScoreAnswer, outcomeFallback, 0)
		return fallbackScore(answer), nil
	}

	reply, err := g.call(ctx, OpScoreAnswer, temperatureScoring, scoringPrompt(question, answer))
	if err != nil {
		return Evaluation{}, err
	}
	parsed, err := decodeReply(reply, scoreReplySchema)
	if err != nil {
		return Evaluation{}, g.formatError(OpScoreAnswer, reply, err)
	}

	eval := Evaluation{
		Score:     clampScore(parsed.Get("score").Float()),
		Summary:   parsed.Get("summary").String(),
		Breakdown: []model.RubricItem{},
	}
	parsed.Get("breakdown").ForEach(func(_, item gjson.Result) bool {
		eval.Breakdown = append(eval.Breakdown, model.RubricItem{
			Criterion: item.Get("criterion").String(),
			Awarded:   int(math.Round(item.Get("awarded").Float())),
			Max:       int(math.Round(item.Get("max").Float())),
		})
		return true
	})
	return eval, nil
}

func (g *LLMGateway) Summarize(ctx context.Context, answers []AnsweredQuestion) (Summary, error) {
	if g.generator == nil {
		g.metrics.observe(g.provider(), OpSummarize, outcomeFallback, 0)
		return fallbackSummary(answers), nil
	}

	reply, err := g.call(ctx, OpSummarize, temperatureScoring, summaryPrompt(answers))
	if err != nil {
		return Summary{}, err
	}
	parsed, err := decodeReply(reply, summaryReplySchema)
	if err != nil {
		return Summary{}, g.formatError(OpSummarize, reply, err)
	}
	return Summary{
		TotalScore: clampScore(parsed.Get("totalScore").Float()),
		Text:       parsed.Get("summary").String(),
	}, nil
}

func (g *LLMGateway) call(ctx context.Context, op string, temperature float32, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log := g.log.With(zap.String(logger.FieldOperation, op))
	log.Debug("model request", zap.Int("prompt_len", len(prompt)), zap.String("prompt", logger.TruncateForLog(prompt, g.preview)))

	start := time.Now()
	reply, err := g.generator.Generate(callCtx, GenerateRequest{
		Operation:   op,
		System:      interviewerSystemPrompt,
		Prompt:      prompt,
		Temperature: temperature,
	})
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, errs.ErrUpstreamTimeout) {
			err = errs.UpstreamTimeout(op, err)
		}
		if errs.KindOf(err) == "" {
			err = errs.Upstream(op, false, err)
		}
		g.metrics.observe(g.provider(), op, outcomeError, elapsed.Seconds())
		log.Warn("model request failed", zap.Duration("elapsed", elapsed), zap.Bool("retryable", errs.Retryable(err)), zap.Error(err))
		return "", err
	}

	g.metrics.observe(g.provider(), op, outcomeOK, elapsed.Seconds())
	log.Debug("model response", zap.Duration("elapsed", elapsed), zap.Int("response_len", len(reply)), zap.String("response", logger.TruncateForLog(reply, g.preview)))
	return reply, nil
}

func (g *LLMGateway) formatError(op, reply string, cause error) error {
	g.log.Warn("model reply rejected",
		zap.String(logger.FieldOperation, op),
		zap.String("response", logger.TruncateForLog(reply, g.preview)),
		zap.Error(cause),
	)
	return errs.UpstreamFormat(op, cause)
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, v))))
}

// renumberQuestions assigns q1..qn when any qid is blank or repeated so that
// qids stay unique within a session.
func renumberQuestions(questions []GeneratedQuestion) []GeneratedQuestion {
	seen := make(map[string]struct{}, len(questions))
	clean := true
	for _, q := range questions {
		if q.QID == "" {
			clean = false
			break
		}
		if _, dup := seen[q.QID]; dup {
			clean = false
			break
		}
		seen[q.QID] = struct{}{}
	}
	if clean {
		return questions
	}
	for i := range questions {
		questions[i].QID = fmt.Sprintf("q%d", i+1)
	}
	return questions
}
