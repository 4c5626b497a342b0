package repository

import (
	"context"
	"strings"

	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/model"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./interviewer_repository.go -package=repomocks -destination=./mocks/interviewer_repository.mock.go InterviewerRepository

type InterviewerRepository interface {
	Create(ctx context.Context, i *model.Interviewer) error
	FindByEmail(ctx context.Context, email string) (*model.Interviewer, error)
}

type interviewerRepository struct {
	db *gorm.DB
}

func NewInterviewerRepository(db *gorm.DB) InterviewerRepository {
	return &interviewerRepository{db: db}
}

func (r *interviewerRepository) Create(ctx context.Context, i *model.Interviewer) error {
	err := r.db.WithContext(ctx).Create(i).Error
	if isUniqueViolation(err) {
		return errs.Conflict("interviewer", i.Email, "interviewer with this email already exists")
	}
	if err != nil {
		return errs.Persistence("create interviewer", err)
	}
	return nil
}

func (r *interviewerRepository) FindByEmail(ctx context.Context, email string) (*model.Interviewer, error) {
	var i model.Interviewer
	err := r.db.WithContext(ctx).First(&i, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if isNotFound(err) {
		return nil, errs.NotFound("interviewer", email)
	}
	if err != nil {
		return nil, errs.Persistence("find interviewer", err)
	}
	return &i, nil
}
