package dto

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/fadilmartias/ai-interviewer/internal/model"
)

// NewQuestions strips answers and scores so a freshly started session only
// exposes what the candidate needs.
func NewQuestions(slots []model.QuestionSlot) []QuestionDTO {
	return slice.Map(slots, func(_ int, s model.QuestionSlot) QuestionDTO {
		return QuestionDTO{QID: s.QID, Question: s.Question, TimeLimit: s.TimeLimitSeconds}
	})
}

func NewSession(s model.InterviewSession) SessionDTO {
	return SessionDTO{
		ID:              s.ID,
		CandidateID:     s.CandidateID,
		Attempt:         s.Attempt,
		State:           s.State,
		TotalScore:      s.TotalScore,
		ModelTotalScore: s.ModelTotalScore,
		Summary:         s.Summary,
		StartedAt:       s.StartedAt,
		FinishedAt:      s.FinishedAt,
		Slots: slice.Map(s.Slots, func(_ int, slot model.QuestionSlot) SlotDTO {
			return SlotDTO{
				QID:              slot.QID,
				Question:         slot.Question,
				TimeLimit:        slot.TimeLimitSeconds,
				Answer:           slot.AnswerText,
				Score:            slot.Score,
				Summary:          slot.Summary,
				Breakdown:        slot.Breakdown,
				TimeTakenSeconds: slot.TimeTakenSeconds,
				AnsweredAt:       slot.AnsweredAt,
			}
		}),
	}
}

func NewCandidate(c model.Candidate) CandidateDTO {
	return CandidateDTO{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		AppliedPosition: c.AppliedPosition,
		Status:          c.Status,
		TotalScore:      c.TotalScore,
		Summary:         c.Summary,
		ActiveSessionID: c.ActiveSessionID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func NewCandidates(list []model.Candidate) []CandidateDTO {
	return slice.Map(list, func(_ int, c model.Candidate) CandidateDTO {
		return NewCandidate(c)
	})
}

func NewCandidateDetail(c model.Candidate, sessions []model.InterviewSession) CandidateDetailDTO {
	return CandidateDetailDTO{
		CandidateDTO: NewCandidate(c),
		ResumeText:   c.ResumeText,
		Sessions: slice.Map(sessions, func(_ int, s model.InterviewSession) SessionDTO {
			return NewSession(s)
		}),
	}
}

func NewInterviewer(i model.Interviewer) InterviewerDTO {
	return InterviewerDTO{ID: i.ID, Name: i.Name, Email: i.Email, Phone: i.Phone, CreatedAt: i.CreatedAt}
}
