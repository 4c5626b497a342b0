package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/fadilmartias/ai-interviewer/internal/repository"
	repomocks "github.com/fadilmartias/ai-interviewer/internal/repository/mocks"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	svcmocks "github.com/fadilmartias/ai-interviewer/internal/service/mocks"
	"github.com/fadilmartias/ai-interviewer/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var interviewCfg = &config.InterviewConfig{QuestionCount: 6, DefaultTimeLimit: 120, HireThreshold: 70}

func newInterviewUsecase(repo repository.InterviewRepository, gen service.TextGenerator, events service.EventPublisher, log *zap.Logger) *usecase.InterviewUsecase {
	gw := service.NewLLMGateway(gen, &config.LLMConfig{Timeout: time.Second}, nil, zap.NewNop())
	return usecase.NewInterviewUsecase(
		repo,
		service.NewQuestionService(gw, interviewCfg),
		service.NewScoringService(gw),
		service.NewAggregatorService(gw),
		service.NewLocalLocker(),
		events,
		interviewCfg,
		log,
	)
}

func modelGenerator(t *testing.T, replies map[string]string) *svcmocks.MockTextGenerator {
	ctrl := gomock.NewController(t)
	gen := svcmocks.NewMockTextGenerator(ctrl)
	gen.EXPECT().Provider().Return(config.ProviderGemini).AnyTimes()
	gen.EXPECT().Model().Return("gemini-2.5-pro").AnyTimes()
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req service.GenerateRequest) (string, error) {
			reply, ok := replies[req.Operation]
			if !ok {
				return "", fmt.Errorf("unexpected operation %s", req.Operation)
			}
			return reply, nil
		}).AnyTimes()
	return gen
}

func intPtr(v int) *int {
	return &v
}

// seedActiveSession stores a candidate whose current attempt has the given
// slot scores.
func seedActiveSession(store *memStore, scores ...*int) (model.Candidate, model.InterviewSession) {
	sessionID := uuid.New()
	c := store.addCandidate(model.Candidate{
		Name:            "Ada",
		Email:           "ada@example.com",
		Status:          model.CandidateInterviewing,
		ActiveSessionID: &sessionID,
	})
	slots := make([]model.QuestionSlot, len(scores))
	for i, s := range scores {
		slots[i] = model.QuestionSlot{
			QID:              fmt.Sprintf("q%d", i+1),
			Question:         fmt.Sprintf("Question %d", i+1),
			AnswerText:       "answer",
			Score:            s,
			TimeLimitSeconds: 120,
		}
	}
	s := store.addSession(model.InterviewSession{
		ID:          sessionID,
		CandidateID: c.ID,
		Attempt:     1,
		State:       model.SessionInterviewing,
		Slots:       slots,
		StartedAt:   time.Now(),
	})
	return c, s
}

func TestInterviewEmptyAnswersEndToEnd(t *testing.T) {
	store := newMemStore()
	events := &recordingPublisher{}
	uc := newInterviewUsecase(store, nil, events, zap.NewNop())
	ctx := context.Background()
	c := store.addCandidate(model.Candidate{Name: "Budi", Email: "budi@example.com"})

	session, err := uc.Start(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, session.Slots, 6)
	for i, slot := range session.Slots {
		assert.Equal(t, fmt.Sprintf("q%d", i+1), slot.QID)
		assert.Positive(t, slot.TimeLimitSeconds)
		assert.Nil(t, slot.Score)
	}
	assert.Equal(t, 120, session.Slots[0].TimeLimitSeconds)
	assert.Equal(t, model.CandidateInterviewing, store.candidate(c.ID).Status)

	for _, slot := range session.Slots {
		eval, err := uc.SubmitAnswer(ctx, usecase.SubmitAnswerInput{SessionID: session.ID, QID: slot.QID, Answer: ""})
		require.NoError(t, err)
		assert.Equal(t, 0, eval.Score)
	}

	result, err := uc.Finish(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, model.CandidateInterviewing, result.Status)

	stored := store.candidate(c.ID)
	require.NotNil(t, stored.TotalScore)
	assert.Equal(t, 0, *stored.TotalScore)
	assert.Equal(t, model.CandidateInterviewing, stored.Status)
	assert.Equal(t, model.SessionCompleted, store.session(session.ID).State)

	published := events.published()
	require.Len(t, published, 1)
	assert.Equal(t, session.ID, published[0].SessionID)
	assert.Equal(t, 0, published[0].TotalScore)
}

func TestSubmitAnswerFallbackScoring(t *testing.T) {
	store := newMemStore()
	uc := newInterviewUsecase(store, nil, nil, zap.NewNop())
	ctx := context.Background()
	c := store.addCandidate(model.Candidate{Name: "Budi", Email: "budi@example.com"})
	session, err := uc.Start(ctx, c.ID)
	require.NoError(t, err)

	answer := "closure " + strings.Repeat("x", 192)
	require.Len(t, answer, 200)
	eval, err := uc.SubmitAnswer(ctx, usecase.SubmitAnswerInput{SessionID: session.ID, QID: "q1", Answer: answer, TimeTakenSeconds: intPtr(42)})
	require.NoError(t, err)
	assert.Equal(t, 100, eval.Score)

	sum := 0
	for _, item := range eval.Breakdown {
		sum += item.Awarded
	}
	assert.Equal(t, 100, sum)

	slot := store.session(session.ID).Slots[0]
	assert.Equal(t, answer, slot.AnswerText)
	require.NotNil(t, slot.Score)
	assert.Equal(t, 100, *slot.Score)
	require.NotNil(t, slot.TimeTakenSeconds)
	assert.Equal(t, 42, *slot.TimeTakenSeconds)
	assert.NotNil(t, slot.AnsweredAt)
}

func TestResubmitOverwrites(t *testing.T) {
	store := newMemStore()
	uc := newInterviewUsecase(store, nil, nil, zap.NewNop())
	ctx := context.Background()
	_, session := seedActiveSession(store, nil, nil)

	_, err := uc.SubmitAnswer(ctx, usecase.SubmitAnswerInput{SessionID: session.ID, QID: "q2", Answer: strings.Repeat("a", 100)})
	require.NoError(t, err)
	_, err = uc.SubmitAnswer(ctx, usecase.SubmitAnswerInput{SessionID: session.ID, QID: "q2", Answer: "short"})
	require.NoError(t, err)

	stored := store.session(session.ID)
	require.Len(t, stored.Slots, 2)
	assert.Equal(t, "short", stored.Slots[1].AnswerText)
	assert.Equal(t, 2, *stored.Slots[1].Score)
}

func TestInterviewNotFound(t *testing.T) {
	store := newMemStore()
	uc := newInterviewUsecase(store, nil, nil, zap.NewNop())
	ctx := context.Background()
	missing := uuid.New()

	_, err := uc.Start(ctx, missing)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = uc.SubmitAnswer(ctx, usecase.SubmitAnswerInput{SessionID: missing, QID: "q1"})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = uc.Finish(ctx, missing)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = uc.GetSession(ctx, missing)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUnknownQIDLeavesSlotsUntouched(t *testing.T) {
	store := newMemStore()
	uc := newInterviewUsecase(store, nil, nil, zap.NewNop())
	_, session := seedActiveSession(store, intPtr(50), nil)

	_, err := uc.SubmitAnswer(context.Background(), usecase.SubmitAnswerInput{SessionID: session.ID, QID: "q9", Answer: "hello"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Contains(t, err.Error(), "q9")

	assert.Equal(t, session.Slots, store.session(session.ID).Slots)
	assert.Zero(t, store.saveCount())
}

func TestFinishIsIdempotent(t *testing.T) {
	store := newMemStore()
	events := &recordingPublisher{}
	uc := newInterviewUsecase(store, nil, events, zap.NewNop())
	_, session := seedActiveSession(store, intPtr(40), intPtr(61), nil)
	ctx := context.Background()

	first, err := uc.Finish(ctx, session.ID)
	require.NoError(t, err)
	second, err := uc.Finish(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, 34, first.TotalScore)
	assert.Equal(t, first.TotalScore, second.TotalScore)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Len(t, events.published(), 2)
}

func TestFinishZeroSlots(t *testing.T) {
	store := newMemStore()
	uc := newInterviewUsecase(store, nil, nil, zap.NewNop())
	_, session := seedActiveSession(store)

	result, err := uc.Finish(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, model.CandidateInterviewing, result.Status)
}

func TestFinishHireThreshold(t *testing.T) {
	testCases := []struct {
		name   string
		scores []*int
		want   model.CandidateStatus
		total  int
	}{
		{name: "above threshold", scores: []*int{intPtr(80), intPtr(90)}, want: model.CandidateHired, total: 85},
		{name: "exactly threshold", scores: []*int{intPtr(70), intPtr(70)}, want: model.CandidateInterviewing, total: 70},
		{name: "unscored counts as zero", scores: []*int{intPtr(100), nil}, want: model.CandidateInterviewing, total: 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			events := &recordingPublisher{}
			uc := newInterviewUsecase(store, nil, events, zap.NewNop())
			c, session := seedActiveSession(store, tc.scores...)

			result, err := uc.Finish(context.Background(), session.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.total, result.TotalScore)
			assert.Equal(t, tc.want, result.Status)
			assert.Equal(t, tc.want, store.candidate(c.ID).Status)

			published := events.published()
			require.Len(t, published, 1)
			assert.Equal(t, tc.want, published[0].Status)
		})
	}
}

func TestRestartAbandonsPreviousAttempt(t *testing.T) {
	store := newMemStore()
	uc := newInterviewUsecase(store, nil, nil, zap.NewNop())
	ctx := context.Background()
	c := store.addCandidate(model.Candidate{Name: "Budi", Email: "budi@example.com"})

	first, err := uc.Start(ctx, c.ID)
	require.NoError(t, err)
	_, err = uc.SubmitAnswer(ctx, usecase.SubmitAnswerInput{SessionID: first.ID, QID: "q1", Answer: "kept"})
	require.NoError(t, err)

	second, err := uc.Start(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Attempt)
	assert.NotEqual(t, first.ID, second.ID)

	old := store.session(first.ID)
	assert.Equal(t, model.SessionAbandoned, old.State)
	assert.Equal(t, "kept", old.Slots[0].AnswerText)
	assert.Equal(t, second.ID, *store.candidate(c.ID).ActiveSessionID)

	_, err = uc.SubmitAnswer(ctx, usecase.SubmitAnswerInput{SessionID: first.ID, QID: "q2", Answer: "late"})
	assert.ErrorIs(t, err, errs.ErrConflict)
	_, err = uc.Finish(ctx, first.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestFinishedAttemptCannotOverrideNewerOne(t *testing.T) {
	store := newMemStore()
	uc := newInterviewUsecase(store, nil, nil, zap.NewNop())
	ctx := context.Background()
	c := store.addCandidate(model.Candidate{Name: "Budi", Email: "budi@example.com"})

	first, err := uc.Start(ctx, c.ID)
	require.NoError(t, err)
	_, err = uc.Finish(ctx, first.ID)
	require.NoError(t, err)

	_, err = uc.Start(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, store.session(first.ID).State)

	_, err = uc.Finish(ctx, first.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestConcurrentSubmissionsKeepEverySlot(t *testing.T) {
	store := newMemStore()
	uc := newInterviewUsecase(store, nil, nil, zap.NewNop())
	ctx := context.Background()
	c := store.addCandidate(model.Candidate{Name: "Budi", Email: "budi@example.com"})
	session, err := uc.Start(ctx, c.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errCh := make(chan error, len(session.Slots))
	for i, slot := range session.Slots {
		wg.Add(1)
		go func(qid string, n int) {
			defer wg.Done()
			_, err := uc.SubmitAnswer(ctx, usecase.SubmitAnswerInput{SessionID: session.ID, QID: qid, Answer: strings.Repeat("a", (n+1)*10)})
			errCh <- err
		}(slot.QID, i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	for i, slot := range store.session(session.ID).Slots {
		require.NotNil(t, slot.Score, slot.QID)
		assert.Equal(t, (i+1)*5, *slot.Score, slot.QID)
	}
}

func TestFinishKeepsLocalMeanWhenModelDiverges(t *testing.T) {
	store := newMemStore()
	core, logs := observer.New(zapcore.WarnLevel)
	gen := modelGenerator(t, map[string]string{
		service.OpSummarize: `{"totalScore": 95, "summary": "Excellent candidate."}`,
	})
	uc := newInterviewUsecase(store, gen, nil, zap.New(core))
	c, session := seedActiveSession(store, intPtr(60), intPtr(40))

	result, err := uc.Finish(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, result.TotalScore)
	assert.Equal(t, "Excellent candidate.", result.Summary)
	assert.Equal(t, model.CandidateInterviewing, result.Status)

	stored := store.session(session.ID)
	assert.Equal(t, 50, *stored.TotalScore)
	assert.Equal(t, 95, *stored.ModelTotalScore)
	assert.Equal(t, 50, *store.candidate(c.ID).TotalScore)

	assert.Equal(t, 1, logs.FilterMessage("model aggregate differs from local mean").Len())
}

func TestFinishEmptyNarrative(t *testing.T) {
	store := newMemStore()
	gen := modelGenerator(t, map[string]string{
		service.OpSummarize: `{"totalScore": 30, "summary": "  "}`,
	})
	uc := newInterviewUsecase(store, gen, nil, zap.NewNop())
	_, session := seedActiveSession(store, intPtr(30))

	result, err := uc.Finish(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Total score 30", result.Summary)
}

func TestModelScoringFailureDoesNotPersist(t *testing.T) {
	store := newMemStore()
	gen := modelGenerator(t, map[string]string{
		service.OpScoreAnswer: "I think this answer deserves a 7.",
	})
	uc := newInterviewUsecase(store, gen, nil, zap.NewNop())
	_, session := seedActiveSession(store, nil)

	_, err := uc.SubmitAnswer(context.Background(), usecase.SubmitAnswerInput{SessionID: session.ID, QID: "q1", Answer: "closures capture scope"})
	assert.ErrorIs(t, err, errs.ErrUpstreamFormat)
	assert.Nil(t, store.session(session.ID).Slots[0].Score)
	assert.Zero(t, store.saveCount())
}

func TestStartWithModelQuestions(t *testing.T) {
	store := newMemStore()
	gen := modelGenerator(t, map[string]string{
		service.OpGenerateQuestions: `{"questions":[{"qid":"go1","question":"What is a goroutine?","timeLimit":90},{"qid":"go2","question":"Explain interfaces."}]}`,
	})
	uc := newInterviewUsecase(store, gen, nil, zap.NewNop())
	c := store.addCandidate(model.Candidate{Name: "Budi", Email: "budi@example.com", ResumeText: "Go developer"})

	session, err := uc.Start(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, session.Slots, 2)
	assert.Equal(t, "go1", session.Slots[0].QID)
	assert.Equal(t, 90, session.Slots[0].TimeLimitSeconds)
	assert.Equal(t, 120, session.Slots[1].TimeLimitSeconds)
}

func TestStartUpstreamFailureKeepsCandidate(t *testing.T) {
	store := newMemStore()
	gen := modelGenerator(t, map[string]string{
		service.OpGenerateQuestions: `{"questions": "none"}`,
	})
	uc := newInterviewUsecase(store, gen, nil, zap.NewNop())
	c := store.addCandidate(model.Candidate{Name: "Budi", Email: "budi@example.com"})

	_, err := uc.Start(context.Background(), c.ID)
	assert.ErrorIs(t, err, errs.ErrUpstreamFormat)
	assert.Equal(t, model.CandidateApplied, store.candidate(c.ID).Status)
	assert.Nil(t, store.candidate(c.ID).ActiveSessionID)
}

func TestFinishPersistenceErrorSkipsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockInterviewRepository(ctrl)
	events := &recordingPublisher{}
	uc := newInterviewUsecase(repo, nil, events, zap.NewNop())

	sessionID := uuid.New()
	candidate := &model.Candidate{ID: uuid.New(), ActiveSessionID: &sessionID, Status: model.CandidateInterviewing}
	session := &model.InterviewSession{ID: sessionID, CandidateID: candidate.ID, State: model.SessionInterviewing}

	repo.EXPECT().FindSession(gomock.Any(), sessionID).Return(session, nil).Times(2)
	repo.EXPECT().FindCandidate(gomock.Any(), candidate.ID).Return(candidate, nil)
	repo.EXPECT().FinishSession(gomock.Any(), candidate, session).Return(errs.Persistence("update session", errors.New("connection reset")))

	_, err := uc.Finish(context.Background(), sessionID)
	assert.ErrorIs(t, err, errs.ErrPersistence)
	assert.Empty(t, events.published())
}

func TestFinishPublishErrorIsNotFatal(t *testing.T) {
	store := newMemStore()
	events := &recordingPublisher{err: errors.New("broker down")}
	uc := newInterviewUsecase(store, nil, events, zap.NewNop())
	_, session := seedActiveSession(store, intPtr(90))

	result, err := uc.Finish(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CandidateHired, result.Status)
	assert.Len(t, events.published(), 1)
}
