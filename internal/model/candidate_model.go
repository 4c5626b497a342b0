package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateStatus string

const (
	CandidateApplied      CandidateStatus = "applied"
	CandidateInterviewing CandidateStatus = "interviewing"
	CandidateHired        CandidateStatus = "hired"
	// CandidateRejected is never set by the interview flow.
	CandidateRejected CandidateStatus = "rejected"
)

const DefaultAppliedPosition = "Software Engineer"

type Candidate struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string          `gorm:"type:varchar(255)" json:"name"`
	Email           string          `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone           string          `gorm:"type:varchar(50)" json:"phone"`
	AppliedPosition string          `gorm:"type:varchar(255)" json:"applied_position"`
	ResumeText      string          `gorm:"type:text" json:"resume_text"`
	Status          CandidateStatus `gorm:"type:varchar(50);index;default:applied" json:"status"`
	TotalScore      *int            `json:"total_score"`
	Summary         string          `gorm:"type:text" json:"summary"`
	ActiveSessionID *uuid.UUID      `gorm:"type:uuid" json:"active_session_id"`
	Version         int64           `gorm:"not null;default:1" json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CandidateApplied
	}
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}
