package dto

import (
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/google/uuid"
)

// RegisterCandidateRequest leaves name and email optional because they can be
// read from the resume instead.
type RegisterCandidateRequest struct {
	Name            string `json:"name" form:"name" validate:"omitempty,max=255"`
	Email           string `json:"email" form:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	AppliedPosition string `json:"appliedPosition" form:"appliedPosition" validate:"omitempty,max=255"`
	ResumeText      string `json:"resumeText" form:"resumeText"`
}

// ParsedResumeDTO reports what could be read from the resume and which
// contact fields are still missing.
type ParsedResumeDTO struct {
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Missing []string `json:"missing"`
}

type CandidateDTO struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone,omitempty"`
	AppliedPosition string                `json:"appliedPosition"`
	Status          model.CandidateStatus `json:"status"`
	TotalScore      *int                  `json:"totalScore"`
	Summary         string                `json:"summary,omitempty"`
	ActiveSessionID *uuid.UUID            `json:"activeSessionId,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

type RegisterCandidateResponse struct {
	Candidate CandidateDTO    `json:"candidate"`
	Parsed    ParsedResumeDTO `json:"parsed"`
}

type CandidateDetailDTO struct {
	CandidateDTO
	ResumeText string       `json:"resumeText"`
	Sessions   []SessionDTO `json:"sessions"`
}

type ListCandidatesQuery struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
	Status   string `query:"status" validate:"omitempty,oneof=applied interviewing hired rejected"`
}
