package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionState string

const (
	SessionInterviewing SessionState = "interviewing"
	SessionCompleted    SessionState = "completed"
	// SessionAbandoned marks an attempt superseded by a later start.
	SessionAbandoned SessionState = "abandoned"
)

type RubricItem struct {
	Criterion string `json:"criterion"`
	Awarded   int    `json:"awarded"`
	Max       int    `json:"max"`
}

// QuestionSlot is one question and its (possibly empty) answer inside a session.
type QuestionSlot struct {
	QID              string       `json:"qid"`
	Question         string       `json:"question"`
	TimeLimitSeconds int          `json:"time_limit_seconds"`
	AnswerText       string       `json:"answer_text"`
	Score            *int         `json:"score,omitempty"`
	Breakdown        []RubricItem `json:"breakdown,omitempty"`
	Summary          string       `json:"summary,omitempty"`
	TimeTakenSeconds *int         `json:"time_taken_seconds,omitempty"`
	AnsweredAt       *time.Time   `json:"answered_at,omitempty"`
}

func (s QuestionSlot) Answered() bool {
	return s.Score != nil
}

type InterviewSession struct {
	ID          uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID uuid.UUID                         `gorm:"type:uuid;not null;uniqueIndex:idx_candidate_attempt" json:"candidate_id"`
	Attempt     int                               `gorm:"not null;uniqueIndex:idx_candidate_attempt" json:"attempt"`
	State       SessionState                      `gorm:"type:varchar(50);index" json:"state"`
	Slots       datatypes.JSONSlice[QuestionSlot] `json:"slots"`
	TotalScore  *int                              `json:"total_score"`
	// ModelTotalScore is the aggregate reported by the model, kept for audit.
	ModelTotalScore *int       `json:"model_total_score"`
	Summary         string     `gorm:"type:text" json:"summary"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at"`
	Version         int64      `gorm:"not null;default:1" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (s *InterviewSession) TableName() string {
	return "interview_sessions"
}

func (s *InterviewSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}

// Slot returns the index of the slot with the given qid, or -1.
func (s *InterviewSession) Slot(qid string) int {
	for i := range s.Slots {
		if s.Slots[i].QID == qid {
			return i
		}
	}
	return -1
}
