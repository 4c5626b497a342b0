package dto

import (
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/google/uuid"
)

type StartInterviewRequest struct {
	CandidateID string `json:"candidateId" validate:"required,uuid"`
}

type QuestionDTO struct {
	QID       string `json:"qid"`
	Question  string `json:"question"`
	TimeLimit int    `json:"timeLimit"`
}

type StartInterviewResponse struct {
	SessionID uuid.UUID     `json:"sessionId"`
	Attempt   int           `json:"attempt"`
	Questions []QuestionDTO `json:"questions"`
}

// SubmitAnswerRequest accepts an empty answer; the client sends one when the
// question timer runs out.
type SubmitAnswerRequest struct {
	SessionID        string `json:"sessionId" validate:"required,uuid"`
	QID              string `json:"qid" validate:"required"`
	Answer           string `json:"answer"`
	TimeTakenSeconds *int   `json:"timeTakenSeconds,omitempty" validate:"omitempty,min=0"`
}

type SubmitAnswerResponse struct {
	QID       string             `json:"qid"`
	Score     int                `json:"score"`
	Summary   string             `json:"summary"`
	Breakdown []model.RubricItem `json:"breakdown"`
}

type FinishInterviewRequest struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

type FinishInterviewResponse struct {
	SessionID  uuid.UUID             `json:"sessionId"`
	TotalScore int                   `json:"totalScore"`
	Summary    string                `json:"summary"`
	Status     model.CandidateStatus `json:"status"`
}

type SlotDTO struct {
	QID              string             `json:"qid"`
	Question         string             `json:"question"`
	TimeLimit        int                `json:"timeLimit"`
	Answer           string             `json:"answer"`
	Score            *int               `json:"score"`
	Summary          string             `json:"summary,omitempty"`
	Breakdown        []model.RubricItem `json:"breakdown,omitempty"`
	TimeTakenSeconds *int               `json:"timeTakenSeconds,omitempty"`
	AnsweredAt       *time.Time         `json:"answeredAt,omitempty"`
}

type SessionDTO struct {
	ID              uuid.UUID          `json:"id"`
	CandidateID     uuid.UUID          `json:"candidateId"`
	Attempt         int                `json:"attempt"`
	State           model.SessionState `json:"state"`
	TotalScore      *int               `json:"totalScore"`
	ModelTotalScore *int               `json:"modelTotalScore,omitempty"`
	Summary         string             `json:"summary"`
	StartedAt       time.Time          `json:"startedAt"`
	FinishedAt      *time.Time         `json:"finishedAt,omitempty"`
	Slots           []SlotDTO          `json:"slots"`
}
