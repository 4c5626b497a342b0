package repository

import (
	"context"

	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./interview_repository.go -package=repomocks -destination=./mocks/interview_repository.mock.go InterviewRepository

// InterviewRepository persists sessions together with the candidate row they
// update. Every write is versioned and multi-row writes run in one
// transaction.
type InterviewRepository interface {
	FindCandidate(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	FindSession(ctx context.Context, id uuid.UUID) (*model.InterviewSession, error)
	ListSessions(ctx context.Context, candidateID uuid.UUID) ([]model.InterviewSession, error)
	// StartSession inserts session, abandons the given earlier attempts and
	// updates the candidate.
	StartSession(ctx context.Context, candidate *model.Candidate, session *model.InterviewSession, abandoned []*model.InterviewSession) error
	SaveSession(ctx context.Context, session *model.InterviewSession) error
	FinishSession(ctx context.Context, candidate *model.Candidate, session *model.InterviewSession) error
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) FindCandidate(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	return findCandidate(ctx, r.db, id)
}

func (r *interviewRepository) FindSession(ctx context.Context, id uuid.UUID) (*model.InterviewSession, error) {
	var s model.InterviewSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if isNotFound(err) {
		return nil, errs.NotFound("session", id.String())
	}
	if err != nil {
		return nil, errs.Persistence("find session", err)
	}
	return &s, nil
}

func (r *interviewRepository) ListSessions(ctx context.Context, candidateID uuid.UUID) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("attempt ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, errs.Persistence("list sessions", err)
	}
	return sessions, nil
}

func (r *interviewRepository) StartSession(ctx context.Context, candidate *model.Candidate, session *model.InterviewSession, abandoned []*model.InterviewSession) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		for _, old := range abandoned {
			if err := updateSession(ctx, tx, old); err != nil {
				return err
			}
		}
		if err := tx.WithContext(ctx).Create(session).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.Conflict("session", session.CandidateID.String(), "attempt already started")
			}
			return errs.Persistence("create session", err)
		}
		return updateCandidate(ctx, tx, candidate)
	})
}

func (r *interviewRepository) SaveSession(ctx context.Context, session *model.InterviewSession) error {
	return updateSession(ctx, r.db, session)
}

func (r *interviewRepository) FinishSession(ctx context.Context, candidate *model.Candidate, session *model.InterviewSession) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := updateSession(ctx, tx, session); err != nil {
			return err
		}
		return updateCandidate(ctx, tx, candidate)
	})
}

func (r *interviewRepository) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := r.db.WithContext(ctx).Transaction(fn)
	if err != nil && errs.KindOf(err) == "" {
		return errs.Persistence("transaction", err)
	}
	return err
}

func updateSession(ctx context.Context, db *gorm.DB, s *model.InterviewSession) error {
	prev := s.Version
	s.Version = prev + 1
	res := db.WithContext(ctx).Model(s).
		Where("version = ?", prev).
		Select("*").Omit("id", "created_at").
		Updates(s)
	if res.Error != nil {
		s.Version = prev
		return errs.Persistence("update session", res.Error)
	}
	if res.RowsAffected == 0 {
		s.Version = prev
		return errs.Conflict("session", s.ID.String(), "session was modified concurrently")
	}
	return nil
}
