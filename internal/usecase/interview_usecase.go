package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/logger"
	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/fadilmartias/ai-interviewer/internal/repository"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubmitAnswerInput struct {
	SessionID        uuid.UUID
	QID              string
	Answer           string
	TimeTakenSeconds *int
}

type FinishResult struct {
	SessionID  uuid.UUID
	TotalScore int
	Summary    string
	Status     model.CandidateStatus
}

// InterviewUsecase drives one candidate through start, answer and finish.
// Every operation runs under the candidate's lock and re-reads its rows after
// acquiring it, so the version check in the repository only fires when a
// writer outside this process got in between.
type InterviewUsecase struct {
	repo       repository.InterviewRepository
	questions  *service.QuestionService
	scorer     *service.ScoringService
	aggregator *service.AggregatorService
	locker     service.Locker
	events     service.EventPublisher
	cfg        *config.InterviewConfig
	log        *zap.Logger
	now        func() time.Time
}

func NewInterviewUsecase(
	repo repository.InterviewRepository,
	questions *service.QuestionService,
	scorer *service.ScoringService,
	aggregator *service.AggregatorService,
	locker service.Locker,
	events service.EventPublisher,
	cfg *config.InterviewConfig,
	log *zap.Logger,
) *InterviewUsecase {
	if events == nil {
		events = service.NoopPublisher{}
	}
	return &InterviewUsecase{
		repo:       repo,
		questions:  questions,
		scorer:     scorer,
		aggregator: aggregator,
		locker:     locker,
		events:     events,
		cfg:        cfg,
		log:        logger.WithFields(log),
		now:        time.Now,
	}
}

// Start opens a new attempt for the candidate. An attempt still in progress
// is marked abandoned rather than overwritten.
func (uc *InterviewUsecase) Start(ctx context.Context, candidateID uuid.UUID) (*model.InterviewSession, error) {
	unlock, err := uc.lock(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	candidate, err := uc.repo.FindCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	questions, err := uc.questions.CreateQuestionSet(ctx, candidate.ResumeText)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	previous, err := uc.repo.ListSessions(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	attempt := 1
	abandoned := make([]*model.InterviewSession, 0, 1)
	for i := range previous {
		if previous[i].Attempt >= attempt {
			attempt = previous[i].Attempt + 1
		}
		if previous[i].State == model.SessionInterviewing {
			previous[i].State = model.SessionAbandoned
			abandoned = append(abandoned, &previous[i])
		}
	}

	session := &model.InterviewSession{
		ID:          uuid.New(),
		CandidateID: candidateID,
		Attempt:     attempt,
		State:       model.SessionInterviewing,
		StartedAt:   uc.now(),
		Slots: slice.Map(questions, func(_ int, q service.GeneratedQuestion) model.QuestionSlot {
			return model.QuestionSlot{QID: q.QID, Question: q.Question, TimeLimitSeconds: q.TimeLimitSeconds}
		}),
	}
	candidate.Status = model.CandidateInterviewing
	candidate.ActiveSessionID = &session.ID

	if err := uc.repo.StartSession(ctx, candidate, session, abandoned); err != nil {
		return nil, err
	}

	uc.log.Info("interview started",
		zap.String(logger.FieldCandidate, candidateID.String()),
		zap.String(logger.FieldSession, session.ID.String()),
		zap.Int("attempt", attempt),
		zap.Int("questions", len(session.Slots)),
		zap.Int("abandoned", len(abandoned)),
	)
	return session, nil
}

// SubmitAnswer scores one answer and stores it in its slot. Answering the
// same question again replaces the earlier result.
func (uc *InterviewUsecase) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (service.Evaluation, error) {
	session, unlock, err := uc.lockedSession(ctx, in.SessionID)
	if err != nil {
		return service.Evaluation{}, err
	}
	defer unlock()

	if _, err := uc.activeCandidate(ctx, session); err != nil {
		return service.Evaluation{}, err
	}

	idx := session.Slot(in.QID)
	if idx < 0 {
		return service.Evaluation{}, errs.NotFound("question", in.QID)
	}

	eval, err := uc.scorer.Evaluate(ctx, session.Slots[idx].Question, in.Answer)
	if err != nil {
		return service.Evaluation{}, fmt.Errorf("score answer %s: %w", in.QID, err)
	}

	answeredAt := uc.now()
	score := eval.Score
	slot := &session.Slots[idx]
	slot.AnswerText = in.Answer
	slot.Score = &score
	slot.Breakdown = eval.Breakdown
	slot.Summary = eval.Summary
	slot.TimeTakenSeconds = in.TimeTakenSeconds
	slot.AnsweredAt = &answeredAt

	if err := uc.repo.SaveSession(ctx, session); err != nil {
		return service.Evaluation{}, err
	}

	uc.log.Debug("answer scored",
		zap.String(logger.FieldSession, session.ID.String()),
		zap.String("qid", in.QID),
		zap.Int("score", score),
		zap.Int("answer_len", len(in.Answer)),
	)
	return eval, nil
}

// Finish computes the session's aggregate and updates the candidate. The
// stored score is always the local mean of slot scores; a different number
// reported by the model is kept on the session for comparison only.
func (uc *InterviewUsecase) Finish(ctx context.Context, sessionID uuid.UUID) (FinishResult, error) {
	session, unlock, err := uc.lockedSession(ctx, sessionID)
	if err != nil {
		return FinishResult{}, err
	}
	defer unlock()

	candidate, err := uc.activeCandidate(ctx, session)
	if err != nil {
		return FinishResult{}, err
	}

	total := service.MeanScore(slice.Map(session.Slots, func(_ int, s model.QuestionSlot) *int {
		return s.Score
	}))
	summary, err := uc.aggregator.Finalize(ctx, slice.Map(session.Slots, func(_ int, s model.QuestionSlot) service.AnsweredQuestion {
		return service.AnsweredQuestion{Question: s.Question, AnswerText: s.AnswerText, Score: s.Score}
	}))
	if err != nil {
		return FinishResult{}, fmt.Errorf("summarize session: %w", err)
	}

	if summary.TotalScore != total {
		uc.log.Warn("model aggregate differs from local mean",
			zap.String(logger.FieldSession, session.ID.String()),
			zap.Int("local_mean", total),
			zap.Int("model_total", summary.TotalScore),
		)
	}

	text := strings.TrimSpace(summary.Text)
	if text == "" {
		text = fmt.Sprintf("Total score %d", total)
	}
	status := model.CandidateInterviewing
	if total > uc.cfg.HireThreshold {
		status = model.CandidateHired
	}

	finishedAt := uc.now()
	modelTotal := summary.TotalScore
	session.State = model.SessionCompleted
	session.TotalScore = &total
	session.ModelTotalScore = &modelTotal
	session.Summary = text
	session.FinishedAt = &finishedAt

	candidate.Status = status
	candidate.TotalScore = &total
	candidate.Summary = text

	if err := uc.repo.FinishSession(ctx, candidate, session); err != nil {
		return FinishResult{}, err
	}

	uc.log.Info("interview finished",
		zap.String(logger.FieldCandidate, candidate.ID.String()),
		zap.String(logger.FieldSession, session.ID.String()),
		zap.Int("total_score", total),
		zap.String("status", string(status)),
	)

	evt := service.InterviewFinishedEvent{
		SessionID:   session.ID,
		CandidateID: candidate.ID,
		Attempt:     session.Attempt,
		TotalScore:  total,
		Status:      status,
		Summary:     text,
		FinishedAt:  finishedAt,
	}
	if err := uc.events.PublishInterviewFinished(ctx, evt); err != nil {
		uc.log.Warn("publish interview finished event", zap.String(logger.FieldSession, session.ID.String()), zap.Error(err))
	}

	return FinishResult{SessionID: session.ID, TotalScore: total, Summary: text, Status: status}, nil
}

func (uc *InterviewUsecase) GetSession(ctx context.Context, sessionID uuid.UUID) (*model.InterviewSession, error) {
	return uc.repo.FindSession(ctx, sessionID)
}

// lockedSession resolves the session's candidate, takes the candidate lock and
// reloads the session so the caller works on the latest version.
func (uc *InterviewUsecase) lockedSession(ctx context.Context, sessionID uuid.UUID) (*model.InterviewSession, func(), error) {
	session, err := uc.repo.FindSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	unlock, err := uc.lock(ctx, session.CandidateID)
	if err != nil {
		return nil, nil, err
	}
	session, err = uc.repo.FindSession(ctx, sessionID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return session, unlock, nil
}

// activeCandidate rejects writes to attempts that a later start superseded.
func (uc *InterviewUsecase) activeCandidate(ctx context.Context, session *model.InterviewSession) (*model.Candidate, error) {
	if session.State == model.SessionAbandoned {
		return nil, errs.Conflict("session", session.ID.String(), "session was abandoned by a newer attempt")
	}
	candidate, err := uc.repo.FindCandidate(ctx, session.CandidateID)
	if err != nil {
		return nil, err
	}
	if candidate.ActiveSessionID == nil || *candidate.ActiveSessionID != session.ID {
		return nil, errs.Conflict("session", session.ID.String(), "session is not the candidate's current attempt")
	}
	return candidate, nil
}

func (uc *InterviewUsecase) lock(ctx context.Context, candidateID uuid.UUID) (func(), error) {
	unlock, err := uc.locker.Lock(ctx, "candidate:"+candidateID.String())
	if err != nil {
		return nil, fmt.Errorf("acquire candidate lock: %w", err)
	}
	return unlock, nil
}
