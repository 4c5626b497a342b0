package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/logger"
	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/fadilmartias/ai-interviewer/internal/repository"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"go.uber.org/zap"
)

type SignUpInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type AuthResult struct {
	Interviewer *model.Interviewer
	Token       string
	ExpiresAt   time.Time
}

type AuthUsecase struct {
	interviewers repository.InterviewerRepository
	passwords    *service.PasswordService
	tokens       *service.JWTService
	log          *zap.Logger
}

func NewAuthUsecase(interviewers repository.InterviewerRepository, passwords *service.PasswordService, tokens *service.JWTService, log *zap.Logger) *AuthUsecase {
	return &AuthUsecase{interviewers: interviewers, passwords: passwords, tokens: tokens, log: logger.WithFields(log)}
}

func (uc *AuthUsecase) SignUp(ctx context.Context, in SignUpInput) (AuthResult, error) {
	hash, err := uc.passwords.Hash(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	interviewer := &model.Interviewer{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
	}
	if err := uc.interviewers.Create(ctx, interviewer); err != nil {
		return AuthResult{}, err
	}
	uc.log.Info("interviewer signed up", zap.String("interviewer_id", interviewer.ID.String()))
	return uc.issue(interviewer)
}

// SignIn answers an unknown email and a wrong password with the same error.
func (uc *AuthUsecase) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	interviewer, err := uc.interviewers.FindByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return AuthResult{}, errs.Unauthorized("invalid email or password")
	}
	if err != nil {
		return AuthResult{}, err
	}

	ok, err := uc.passwords.Compare(interviewer.PasswordHash, password)
	if err != nil {
		return AuthResult{}, err
	}
	if !ok {
		return AuthResult{}, errs.Unauthorized("invalid email or password")
	}
	return uc.issue(interviewer)
}

func (uc *AuthUsecase) issue(interviewer *model.Interviewer) (AuthResult, error) {
	token, expiresAt, err := uc.tokens.GenerateToken(interviewer.ID, interviewer.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Interviewer: interviewer, Token: token, ExpiresAt: expiresAt}, nil
}
