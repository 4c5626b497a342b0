package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/logger"
	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/fadilmartias/ai-interviewer/internal/repository"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type RegisterCandidateInput struct {
	Name            string
	Email           string
	Phone           string
	AppliedPosition string
	ResumeText      string
}

type CandidatePage struct {
	Items    []model.Candidate
	Total    int64
	Page     int
	PageSize int
}

type CandidateUsecase struct {
	candidates repository.CandidateRepository
	interviews repository.InterviewRepository
	log        *zap.Logger
}

func NewCandidateUsecase(candidates repository.CandidateRepository, interviews repository.InterviewRepository, log *zap.Logger) *CandidateUsecase {
	return &CandidateUsecase{candidates: candidates, interviews: interviews, log: logger.WithFields(log)}
}

// Register creates a candidate. Name, email and phone left blank are taken
// from the resume text when it contains them.
func (uc *CandidateUsecase) Register(ctx context.Context, in RegisterCandidateInput) (*model.Candidate, service.ParsedResume, error) {
	parsed := service.ParseResume(in.ResumeText)

	c := &model.Candidate{
		Name:            firstNonEmpty(in.Name, parsed.Name),
		Email:           strings.ToLower(firstNonEmpty(in.Email, parsed.Email)),
		Phone:           firstNonEmpty(in.Phone, parsed.Phone),
		AppliedPosition: firstNonEmpty(in.AppliedPosition, model.DefaultAppliedPosition),
		ResumeText:      strings.TrimSpace(in.ResumeText),
		Status:          model.CandidateApplied,
	}
	if c.Name == "" {
		return nil, parsed, errs.Validation("name is required and could not be read from the resume")
	}
	if c.Email == "" {
		return nil, parsed, errs.Validation("email is required and could not be read from the resume")
	}

	if err := uc.candidates.Create(ctx, c); err != nil {
		return nil, parsed, err
	}
	uc.log.Info("candidate registered",
		zap.String(logger.FieldCandidate, c.ID.String()),
		zap.Int("resume_len", len(c.ResumeText)),
		zap.Strings("missing", parsed.Missing),
	)
	return c, parsed, nil
}

// List fetches one page of candidates and the total count concurrently.
func (uc *CandidateUsecase) List(ctx context.Context, page, pageSize int, status string) (CandidatePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)

	filter := repository.CandidateFilter{
		Status: status,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	}

	result := CandidatePage{Page: page, PageSize: pageSize}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		result.Items, err = uc.candidates.List(egCtx, filter)
		return err
	})
	eg.Go(func() error {
		var err error
		result.Total, err = uc.candidates.Count(egCtx, filter)
		return err
	})
	if err := eg.Wait(); err != nil {
		return CandidatePage{}, err
	}
	return result, nil
}

// Detail returns the candidate with every interview attempt, oldest first.
func (uc *CandidateUsecase) Detail(ctx context.Context, id uuid.UUID) (*model.Candidate, []model.InterviewSession, error) {
	var (
		candidate *model.Candidate
		sessions  []model.InterviewSession
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		candidate, err = uc.candidates.FindByID(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		sessions, err = uc.interviews.ListSessions(egCtx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return candidate, sessions, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
